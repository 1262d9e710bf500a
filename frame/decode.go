package frame

import (
	"encoding/hex"
	"io"

	"github.com/chproto/arrowcodec/errs"
	"github.com/chproto/arrowcodec/internal/cityhash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Hooks receives decode-time observability callbacks. nil is a safe nop.
type Hooks interface {
	ChecksumMismatch(expectedHex, gotHex string)
	UnexpectedMethod(want, got byte)
}

// Decode reads exactly one frame from r, verifies its checksum, and returns
// the decompressed payload. expected is the method the caller declared for
// this frame; a mismatch is a protocol error, not silently tolerated.
func Decode(r io.Reader, expected Method, hooks Hooks) ([]byte, error) {
	// readField reads one frame field. A stream that ends inside a frame is
	// a short read (Protocol); only an EOF before the first checksum byte
	// stays an Io error wrapping io.EOF, which Reader takes as end of stream.
	readField := func(b []byte, field string, atFrameStart bool) error {
		_, err := io.ReadFull(r, b)
		switch {
		case err == nil:
			return nil
		case err == io.EOF && atFrameStart:
			return errs.Errorf(errs.Io, err, "read frame %s", field)
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			return errs.Errorf(errs.Protocol, io.ErrUnexpectedEOF, "short read of frame %s", field)
		default:
			return errs.Errorf(errs.Io, err, "read frame %s", field)
		}
	}

	ck := make([]byte, ChecksumLen)
	if err := readField(ck, "checksum", true); err != nil {
		return nil, err
	}
	wantHi := getU64LE(ck[0:8])
	wantLo := getU64LE(ck[8:16])

	methodByte := make([]byte, 1)
	if err := readField(methodByte, "method byte", false); err != nil {
		return nil, err
	}
	if methodByte[0] != byte(expected) {
		if hooks != nil {
			hooks.UnexpectedMethod(byte(expected), methodByte[0])
		}
		return nil, errs.Errorf(errs.Protocol, nil,
			"Unexpected compression algorithm: want %#x, got %#x", byte(expected), methodByte[0])
	}

	sizes := make([]byte, 8)
	if err := readField(sizes, "sizes", false); err != nil {
		return nil, err
	}
	compressedSize := getU32LE(sizes[0:4])
	decompressedSize := getU32LE(sizes[4:8])

	if compressedSize < MinCompressedSize || compressedSize > MaxCompressedSize {
		return nil, errs.Errorf(errs.Protocol, nil,
			"Chunk size too large: compressed_size=%d", compressedSize)
	}
	if decompressedSize > MaxDecompressedSize {
		return nil, errs.Errorf(errs.Protocol, nil,
			"Chunk size too large: decompressed_size=%d", decompressedSize)
	}

	buf := make([]byte, compressedSize)
	buf[0] = methodByte[0]
	copy(buf[1:5], sizes[0:4])
	copy(buf[5:9], sizes[4:8])
	if err := readField(buf[HeaderLen:], "payload", false); err != nil {
		return nil, err
	}

	got := cityhash.Hash128(buf)
	if got.High != wantHi || got.Low != wantLo {
		wantHex := hex.EncodeToString(append(appendU64LE(nil, wantHi), appendU64LE(nil, wantLo)...))
		gotHex := hex.EncodeToString(append(appendU64LE(nil, got.High), appendU64LE(nil, got.Low)...))
		if hooks != nil {
			hooks.ChecksumMismatch(wantHex, gotHex)
		}
		return nil, errs.Errorf(errs.Protocol, nil,
			"Checksum mismatch: expected %s, got %s", wantHex, gotHex)
	}

	payload := buf[HeaderLen:]
	switch Method(methodByte[0]) {
	case LZ4:
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, errs.Errorf(errs.DeserializeError, err, "lz4 decompress")
		}
		if n != int(decompressedSize) {
			return nil, errs.Errorf(errs.DeserializeError, nil,
				"lz4 decompressed %d bytes, header declares %d", n, decompressedSize)
		}
		return out, nil
	case ZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errs.Errorf(errs.DeserializeError, err, "zstd decoder init")
		}
		defer dec.Close()
		out, err := dec.DecodeAll(payload, make([]byte, 0, decompressedSize))
		if err != nil {
			return nil, errs.Errorf(errs.DeserializeError, err, "zstd decompress")
		}
		if len(out) != int(decompressedSize) {
			return nil, errs.Errorf(errs.DeserializeError, nil,
				"zstd decompressed %d bytes, header declares %d", len(out), decompressedSize)
		}
		return out, nil
	case None:
		return nil, errs.Errorf(errs.DeserializeError, nil, "Method=None is not a legal decode call")
	default:
		return nil, errs.Errorf(errs.Protocol, nil, "unknown compression method %#x", methodByte[0])
	}
}

func getU32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func getU64LE(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
