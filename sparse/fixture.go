package sparse

import "github.com/chproto/arrowcodec/varint"

// EncodeOffsets is the inverse of ReadOffsets: given the positions that
// carry a value out of totalRows, it produces the varint run-length stream
// a server would have written for that granule. It exists for tests and
// fixtures; production code only ever reads sparse offsets.
func EncodeOffsets(positions []uint64, totalRows uint64) []byte {
	var out []byte
	prev := uint64(0)
	for _, pos := range positions {
		run := pos - prev
		out = varint.Put(out, run)
		prev = pos + 1
	}
	trailing := totalRows - prev
	out = varint.Put(out, trailing|endOfGranuleFlag)
	return out
}
