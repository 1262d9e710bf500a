package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/chproto/arrowcodec/errs"
	"github.com/pierrec/lz4/v4"
)

func TestLZ4RoundTrip(t *testing.T) {
	raw := []byte("test data for compression")
	encoded, err := Encode(raw, LZ4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) < 25 {
		t.Fatalf("encoded frame too short: %d bytes", len(encoded))
	}

	got, err := Decode(bytes.NewReader(encoded), LZ4, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, raw)
	}
}

func TestLZ4StoreLiteralDecodesViaUncompressBlock(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("x"),
		bytes.Repeat([]byte{0x00}, 14),
		bytes.Repeat([]byte{0x00}, 15),
		bytes.Repeat([]byte{0x00}, 300),
	}
	for _, src := range cases {
		block := lz4StoreLiteral(src)
		dst := make([]byte, len(src))
		n, err := lz4.UncompressBlock(block, dst)
		if err != nil {
			t.Fatalf("UncompressBlock(len=%d): %v", len(src), err)
		}
		if n != len(src) || !bytes.Equal(dst[:n], src) {
			t.Fatalf("UncompressBlock(len=%d) = %v, want %v", len(src), dst[:n], src)
		}
	}
}

func TestLZ4RoundTripIncompressibleInput(t *testing.T) {
	// Random-looking, already-dense bytes: pierrec's CompressBlock reports
	// n==0 for input it can't shrink, exercising the literal-store fallback.
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i*167 + 13)
	}
	encoded, err := Encode(raw, LZ4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(bytes.NewReader(encoded), LZ4, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch for incompressible input")
	}
}

func TestZSTDRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte("abcdefgh"), 64)
	encoded, err := Encode(raw, ZSTD)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(bytes.NewReader(encoded), ZSTD, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodeWrongMethod(t *testing.T) {
	raw := []byte("test data for compression")
	encoded, err := Encode(raw, LZ4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(bytes.NewReader(encoded), None, nil)
	var codecErr *errs.Error
	if !errors.As(err, &codecErr) || codecErr.Kind != errs.Protocol {
		t.Fatalf("expected Protocol error for method mismatch, got %v", err)
	}
}

func TestDecodeChecksumTamper(t *testing.T) {
	raw := []byte("test data for compression")
	encoded, err := Encode(raw, LZ4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encoded[0] ^= 0xFF

	_, err = Decode(bytes.NewReader(encoded), LZ4, nil)
	var codecErr *errs.Error
	if !errors.As(err, &codecErr) || codecErr.Kind != errs.Protocol {
		t.Fatalf("expected Protocol error for checksum tamper, got %v", err)
	}
}

func TestEncodeNoneRejected(t *testing.T) {
	_, err := Encode([]byte("x"), None)
	if err == nil {
		t.Fatalf("expected error encoding with Method=None")
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	encoded, err := Encode(nil, LZ4)
	if err != nil {
		t.Fatalf("Encode empty: %v", err)
	}
	got, err := Decode(bytes.NewReader(encoded), LZ4, nil)
	if err != nil {
		t.Fatalf("Decode empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty payload, got %v", got)
	}
}

type hookRecorder struct {
	mismatches int
	unexpected int
}

func (h *hookRecorder) ChecksumMismatch(string, string) { h.mismatches++ }
func (h *hookRecorder) UnexpectedMethod(byte, byte)     { h.unexpected++ }

func TestDecodeHooksFireOnMismatch(t *testing.T) {
	raw := []byte("test data for compression")
	encoded, err := Encode(raw, LZ4)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encoded[0] ^= 0xFF

	h := &hookRecorder{}
	_, _ = Decode(bytes.NewReader(encoded), LZ4, h)
	if h.mismatches != 1 {
		t.Fatalf("expected 1 checksum mismatch hook call, got %d", h.mismatches)
	}
}

func TestReaderConcatenatesFrames(t *testing.T) {
	var stream bytes.Buffer
	frame1, _ := Encode([]byte("hello, "), LZ4)
	frame2, _ := Encode([]byte("world"), LZ4)
	stream.Write(frame1)
	stream.Write(frame2)

	r, err := NewReader(&stream, LZ4, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello, world" {
		t.Fatalf("got %q, want %q", got, "hello, world")
	}
}

func TestReaderZeroLengthReadIsNoop(t *testing.T) {
	frame1, _ := Encode([]byte("x"), LZ4)
	r, err := NewReader(bytes.NewReader(frame1), LZ4, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	n, err := r.Read(nil)
	if n != 0 || err != nil {
		t.Fatalf("zero-length read should be a no-op, got n=%d err=%v", n, err)
	}
}

func TestReaderEOFOnEmptyStream(t *testing.T) {
	r, err := NewReader(bytes.NewReader(nil), LZ4, nil)
	if err != nil {
		t.Fatalf("NewReader on empty stream should not error, got %v", err)
	}
	n, err := r.Read(make([]byte, 16))
	if n != 0 || err != io.EOF {
		t.Fatalf("expected immediate EOF, got n=%d err=%v", n, err)
	}
}
