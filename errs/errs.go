// Package errs holds the error taxonomy shared by every package in this
// module. It is split out from the root package so that leaf packages
// (frame, sparse, bitmap, bufpool) can surface typed errors without
// importing the root package that composes them — which would otherwise
// be an import cycle, since the root package's Pipeline imports them.
package errs

import "fmt"

// Kind classifies the outcome of a codec operation, matching the error
// taxonomy every decode/encode path in this module surfaces verbatim.
type Kind int

const (
	// Io wraps a failure from the underlying byte stream.
	Io Kind = iota
	// Protocol covers a bad method byte, an oversized frame, a short read,
	// or a frame checksum mismatch.
	Protocol
	// Checksum classifies a CityHash-128 mismatch. frame.Decode does not
	// return it; it reports checksum mismatches as Protocol.
	Checksum
	// SerializeError is raised when a compressor rejects input.
	SerializeError
	// DeserializeError is raised when a decompressor rejects a payload or a
	// decoded size disagrees with the declared size.
	DeserializeError
	// Unimplemented marks an unsupported operation: sparse expansion for a
	// data type with no decoder, or frame encoding with Method None.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case Protocol:
		return "protocol"
	case Checksum:
		return "checksum"
	case SerializeError:
		return "serialize_error"
	case DeserializeError:
		return "deserialize_error"
	case Unimplemented:
		return "unimplemented"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by every package in this module.
// Nothing is retried internally: every Error reaching a caller is terminal
// for the stream it came from.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("arrowcodec: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("arrowcodec: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Errorf builds an *Error of the given kind, wrapping cause if non-nil.
func Errorf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
