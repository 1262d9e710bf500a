package arrowcodec

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/chproto/arrowcodec/bitmap"
	"github.com/chproto/arrowcodec/bufpool"
	"github.com/chproto/arrowcodec/frame"
	"github.com/chproto/arrowcodec/sparse"
	"github.com/chproto/arrowcodec/transport"
)

// Pipeline composes the bitmap, frame, and sparse codecs into the
// bidirectional path a column travels on the wire: WriteColumn serializes
// an Arrow array (null mask + values, framed and checksummed) out to a
// transport.Writer; ReadColumn does the inverse, additionally expanding a
// sparse-encoded column to dense when the server marked it as such.
type Pipeline struct {
	Pool    *bufpool.Pool
	Method  frame.Method
	Hooks   Hooks
	FrameH  frame.Hooks
	SparseH sparse.Hooks
}

// NewPipeline builds a Pipeline with sane defaults: LZ4 framing, NopHooks,
// and a fresh buffer pool.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Pool:   bufpool.New(),
		Method: frame.LZ4,
		Hooks:  NopHooks{},
	}
}

// Allocator returns an Arrow memory.Allocator backed by this pipeline's
// buffer pool, so array builders and this pipeline share the same tiered
// reuse.
func (p *Pipeline) Allocator() memory.Allocator {
	return bufpool.NewAllocator(p.Pool)
}

// WriteColumn writes one column's worth of rows: a null mask (unless the
// column is a container type, which carries no mask of its own) followed
// by its raw value bytes, compressed and checksummed as a single frame.
func (p *Pipeline) WriteColumn(w transport.Writer, values arrow.Array, valueBytes []byte) (int64, error) {
	var nullMask []byte
	if !isContainerType(values.DataType()) {
		nullMask = bitmap.ExpandValidity(values.NullBitmapBytes(), values.Len())
	}

	payload := make([]byte, 0, len(nullMask)+len(valueBytes))
	payload = append(payload, nullMask...)
	payload = append(payload, valueBytes...)

	encoded, err := frame.Encode(payload, p.Method)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(encoded)
	return int64(n), err
}

// ReadColumn reads one framed column and returns its null mask (possibly
// nil, for container types) and raw value bytes.
func (p *Pipeline) ReadColumn(r transport.Reader, rows int, isContainer bool) (nullMask, valueBytes []byte, err error) {
	payload, err := frame.Decode(r, p.Method, p.FrameH)
	if err != nil {
		return nil, nil, err
	}
	if isContainer {
		return nil, payload, nil
	}
	if len(payload) < rows {
		return nil, nil, Errorf(DeserializeError, nil, "column payload shorter than row count: %d < %d", len(payload), rows)
	}
	return payload[:rows], payload[rows:], nil
}

// ReadSparseColumn reads one granule's sparse offsets for a column, then
// materializes the dense array from the already-decoded sparse values.
func (p *Pipeline) ReadSparseColumn(r transport.Reader, rowsWanted uint64, state *sparse.CarryState, sparseValues arrow.Array, mem memory.Allocator) (arrow.Array, error) {
	positions, err := sparse.ReadOffsets(r, rowsWanted, state, p.SparseH)
	if err != nil {
		return nil, err
	}
	return sparse.Expand(sparseValues, positions, int(rowsWanted), mem)
}

func isContainerType(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST, arrow.MAP, arrow.STRUCT:
		return true
	default:
		return false
	}
}
