package bufpool

import "github.com/apache/arrow/go/v17/arrow/memory"

// Allocator adapts Pool to Arrow's memory.Allocator interface, so Arrow
// array builders draw their backing storage from the same tiered pool used
// by the frame and bitmap codecs instead of from the Go heap directly.
type Allocator struct {
	pool *Pool
}

var _ memory.Allocator = (*Allocator)(nil)

// NewAllocator wraps pool as an Arrow allocator.
func NewAllocator(pool *Pool) *Allocator {
	return &Allocator{pool: pool}
}

func (a *Allocator) Allocate(size int) []byte {
	buf := a.pool.Get(size)
	return buf[:size]
}

func (a *Allocator) Reallocate(size int, b []byte) []byte {
	if size <= cap(b) {
		return b[:size]
	}
	newBuf := a.pool.Get(size)
	newBuf = newBuf[:size]
	copy(newBuf, b)
	a.pool.Put(b)
	return newBuf
}

func (a *Allocator) Free(b []byte) {
	a.pool.Put(b)
}
