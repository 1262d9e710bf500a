package frame

import (
	"io"

	"github.com/chproto/arrowcodec/errs"
)

type readerState int

const (
	stateIdle readerState = iota
	stateExhausted
)

// Reader concatenates the decompressed payloads of successive frames read
// from an underlying stream, presenting them through a single io.Reader.
// Frames are decoded one at a time and strictly in order; concurrent use of
// one Reader from multiple goroutines is not supported.
type Reader struct {
	src    io.Reader
	method Method
	hooks  Hooks

	state readerState
	buf   []byte
	pos   int
}

// NewReader constructs a Reader and eagerly decodes the first frame, so the
// Reader starts in the Idle state per the format's state machine.
func NewReader(src io.Reader, method Method, hooks Hooks) (*Reader, error) {
	r := &Reader{src: src, method: method, hooks: hooks}
	if err := r.fillNext(); err != nil {
		return nil, err
	}
	return r, nil
}

// fillNext decodes the next frame into r.buf, or transitions to Exhausted
// on a clean EOF before any frame bytes are read.
func (r *Reader) fillNext() error {
	buf, err := Decode(r.src, r.method, r.hooks)
	if err != nil {
		if codecErr, ok := err.(*errs.Error); ok && codecErr.Kind == errs.Io {
			if unwrapped := codecErr.Unwrap(); unwrapped == io.EOF {
				r.state = stateExhausted
				r.buf, r.pos = nil, 0
				return nil
			}
		}
		return err
	}
	r.buf = buf
	r.pos = 0
	r.state = stateIdle
	return nil
}

// Read implements io.Reader. A zero-length p returns immediately without
// touching the underlying stream.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.state == stateExhausted {
		return 0, io.EOF
	}

	if r.pos == len(r.buf) {
		if err := r.fillNext(); err != nil {
			return 0, err
		}
		if r.state == stateExhausted {
			return 0, io.EOF
		}
	}

	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}
