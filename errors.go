// Package arrowcodec implements the columnar wire codec used to exchange
// Apache Arrow record batches with a ClickHouse server: framed compression
// with CityHash-128 checksums, nullability and sparse column encodings, and
// a pooled-buffer hot path for both.
//
// Components:
//   - frame: compression envelope (checksum, header, LZ4/ZSTD payload) and a
//     streaming decompressor.
//   - bitmap: Arrow validity bitmap <-> ClickHouse null-mask conversion.
//   - sparse: ClickHouse sparse column offsets <-> dense Arrow array.
//   - bufpool: tiered buffer reuse shared by the above.
//   - varint, bitutil: LEB128 varints, endian swaps, UUID half-swap.
//
// Connection establishment, authentication, query lifecycle, and the
// high-level client are out of scope; package transport defines only the
// reader/writer interfaces this codec needs from such a collaborator.
package arrowcodec

import "github.com/chproto/arrowcodec/errs"

// Kind, Error, and Errorf are aliased from package errs so callers of the
// root package see one error taxonomy without needing to know it's
// physically factored out to break an import cycle with frame/sparse.
type (
	Kind  = errs.Kind
	Error = errs.Error
)

const (
	Io               = errs.Io
	Protocol         = errs.Protocol
	Checksum         = errs.Checksum
	SerializeError   = errs.SerializeError
	DeserializeError = errs.DeserializeError
	Unimplemented    = errs.Unimplemented
)

// Errorf builds an *Error of the given kind, wrapping cause if non-nil.
func Errorf(kind Kind, cause error, format string, args ...any) *Error {
	return errs.Errorf(kind, cause, format, args...)
}
