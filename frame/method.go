// Package frame implements the compression envelope of the ClickHouse
// native wire format: a CityHash-128 checksum over a small fixed header and
// an LZ4- or ZSTD-compressed payload, plus a streaming reader that
// concatenates decoded frames across an arbitrary number of boundaries.
package frame

// HeaderLen is the length of the method+sizes header that immediately
// precedes the payload and is itself covered by the checksum.
const HeaderLen = 9

// ChecksumLen is the length of the CityHash-128 checksum that precedes the
// header on the wire.
const ChecksumLen = 16

// Size limits enforced on decode, per the wire format's invariants.
const (
	MinCompressedSize   = HeaderLen
	MaxCompressedSize   = 100_000_000
	MaxDecompressedSize = 1_000_000_000
)

// Method identifies the compression codec used for a frame's payload.
type Method byte

const (
	None Method = 0x02
	LZ4  Method = 0x82
	ZSTD Method = 0x90
)

func (m Method) String() string {
	switch m {
	case None:
		return "None"
	case LZ4:
		return "LZ4"
	case ZSTD:
		return "ZSTD"
	default:
		return "Unknown"
	}
}
