package arrowcodec

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/chproto/arrowcodec/frame"
)

func TestPipelineWriteReadColumnRoundTrip(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := array.NewInt32Builder(mem)
	b.AppendValues([]int32{1, 2, 3}, []bool{true, false, true})
	values := b.NewInt32Array()

	valueBytes := make([]byte, 0, values.Len()*4)
	for i := 0; i < values.Len(); i++ {
		v := uint32(values.Value(i))
		valueBytes = append(valueBytes, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}

	p := NewPipeline()
	var buf bytes.Buffer
	if _, err := p.WriteColumn(&buf, values, valueBytes); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}

	nullMask, gotValueBytes, err := p.ReadColumn(&buf, values.Len(), false)
	if err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	wantMask := []byte{0, 1, 0}
	if !bytes.Equal(nullMask, wantMask) {
		t.Fatalf("nullMask = %v, want %v", nullMask, wantMask)
	}
	if !bytes.Equal(gotValueBytes, valueBytes) {
		t.Fatalf("valueBytes = %v, want %v", gotValueBytes, valueBytes)
	}
}

func TestPipelineDefaultMethodIsLZ4(t *testing.T) {
	p := NewPipeline()
	if p.Method != frame.LZ4 {
		t.Fatalf("default method = %v, want LZ4", p.Method)
	}
}
