package frame

import (
	"io"

	"github.com/chproto/arrowcodec/bufpool"
	"github.com/chproto/arrowcodec/errs"
	"github.com/chproto/arrowcodec/internal/cityhash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// zstdEncoderOpts fixes the encoder at zstd.SpeedFastest, the library's
// level-1 equivalent: the codec favors throughput over ratio,
// matching what the frame format's compression budget assumes.
var zstdEncoderOpts = []zstd.EOption{zstd.WithEncoderLevel(zstd.SpeedFastest)}

// Encode compresses raw with method and returns the full wire
// representation: checksum ‖ header ‖ compressed payload. Method==None is
// invalid for Encode; callers writing uncompressed data emit raw directly,
// out of band, per the wire format.
func Encode(raw []byte, method Method) ([]byte, error) {
	var compressed []byte
	switch method {
	case LZ4:
		var err error
		compressed, err = lz4Compress(raw)
		if err != nil {
			return nil, err
		}
	case ZSTD:
		enc, err := zstd.NewWriter(nil, zstdEncoderOpts...)
		if err != nil {
			return nil, errs.Errorf(errs.SerializeError, err, "zstd encoder init")
		}
		compressed = enc.EncodeAll(raw, nil)
		_ = enc.Close()
	case None:
		return nil, errs.Errorf(errs.Unimplemented, nil, "Encode does not accept Method=None")
	default:
		return nil, errs.Errorf(errs.Protocol, nil, "unknown compression method %v", method)
	}

	return assemble(method, compressed, raw)
}

// EncodePooled is Encode but draws its output buffer from pool, so callers
// on a hot write path avoid a fresh heap allocation per frame. The returned
// buffer must eventually be returned with pool.Put.
func EncodePooled(raw []byte, method Method, pool *bufpool.Pool) ([]byte, error) {
	// Compression libraries manage their own scratch space; pooling here
	// buys back the final header+checksum assembly allocation, which is
	// the one this package fully controls.
	compressed, err := compressOnly(raw, method)
	if err != nil {
		return nil, err
	}
	out := pool.Get(ChecksumLen + HeaderLen + len(compressed))
	return assembleInto(out, method, compressed, raw)
}

func compressOnly(raw []byte, method Method) ([]byte, error) {
	switch method {
	case LZ4:
		return lz4Compress(raw)
	case ZSTD:
		enc, err := zstd.NewWriter(nil, zstdEncoderOpts...)
		if err != nil {
			return nil, errs.Errorf(errs.SerializeError, err, "zstd encoder init")
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	default:
		return nil, errs.Errorf(errs.Unimplemented, nil, "EncodePooled requires a real compression method")
	}
}

// lz4Compress compresses raw with the LZ4 block codec. pierrec's
// CompressBlock returns (0, nil) rather than an error when the input
// wouldn't shrink — not a failure, just a signal that literal storage is
// as good as it gets. In that case lz4StoreLiteral builds the equivalent
// all-literal LZ4 block by hand, which UncompressBlock decodes the same as
// any other valid block.
func lz4Compress(raw []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(raw))
	buf := make([]byte, bound)
	var c lz4.Compressor
	n, err := c.CompressBlock(raw, buf)
	if err != nil {
		return nil, errs.Errorf(errs.SerializeError, err, "lz4 compress")
	}
	if n == 0 && len(raw) > 0 {
		return lz4StoreLiteral(raw), nil
	}
	return buf[:n], nil
}

// lz4StoreLiteral encodes src as a single-sequence LZ4 block containing
// nothing but a literal run: a token byte (literal-length nibble, followed
// by length-extension bytes past 14), then the literal bytes themselves,
// with no trailing match — the simplest block the format allows, and
// always valid however incompressible src is.
func lz4StoreLiteral(src []byte) []byte {
	litLen := len(src)
	dst := make([]byte, 0, litLen+litLen/255+2)

	if litLen < 15 {
		dst = append(dst, byte(litLen<<4))
	} else {
		dst = append(dst, 0xF0)
		rem := litLen - 15
		for rem >= 255 {
			dst = append(dst, 0xFF)
			rem -= 255
		}
		dst = append(dst, byte(rem))
	}
	return append(dst, src...)
}

// EncodeReader reads all of r into memory and encodes it as a single frame.
func EncodeReader(r io.Reader, method Method) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Errorf(errs.Io, err, "read frame payload source")
	}
	return Encode(raw, method)
}

func assemble(method Method, compressed, raw []byte) ([]byte, error) {
	out := make([]byte, 0, ChecksumLen+HeaderLen+len(compressed))
	return assembleInto(out, method, compressed, raw)
}

func assembleInto(out []byte, method Method, compressed, raw []byte) ([]byte, error) {
	compressedSize := uint32(len(compressed) + HeaderLen)
	decompressedSize := uint32(len(raw))

	header := make([]byte, HeaderLen)
	header[0] = byte(method)
	putU32LE(header[1:5], compressedSize)
	putU32LE(header[5:9], decompressedSize)

	sum := make([]byte, 0, HeaderLen+len(compressed))
	sum = append(sum, header...)
	sum = append(sum, compressed...)
	ck := cityhash.Hash128(sum)

	out = out[:0]
	out = appendU64LE(out, ck.High)
	out = appendU64LE(out, ck.Low)
	out = append(out, sum...)
	return out, nil
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func appendU64LE(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
