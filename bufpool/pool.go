// Package bufpool implements the tiered byte-buffer pool shared by the
// frame and bitmap packages. Buffers are bucketed by capacity so that a
// small checksum scratch buffer never displaces a large decompression
// buffer in the same free list.
package bufpool

import "sync"

const (
	tinyCeiling   = 1024
	smallCeiling  = 4 * 1024
	mediumCeiling = 64 * 1024
	largeCeiling  = 1024 * 1024

	// MaxPoolSize bounds how many buffers each tier retains; the rest are
	// left for GC rather than grown without limit.
	MaxPoolSize = 32

	// noPoolFloor: buffers smaller than this aren't worth pooling, the
	// allocator overhead dominates the copy they'd save.
	noPoolFloor = tinyCeiling / 2
)

// Pool is a thread-safe, five-tier buffer pool: <=1KiB, <=4KiB, <=64KiB,
// <=1MiB, and an unbounded tier for anything larger (rounded up to the next
// power of two so repeated requests of similar size reuse the same bucket).
type Pool struct {
	cfg   tierConfig
	tiers [5]struct {
		mu   sync.Mutex
		free [][]byte
	}
}

// Hooks receives observability callbacks; nil is a safe nop.
type Hooks interface {
	PoolTierExhausted(tierCeiling int)
}

// tierConfig is a Pool's resolved (defaults-applied) tier layout.
type tierConfig struct {
	ceilings    [4]int // tiny, small, medium, large
	maxPoolSize int
	noPoolFloor int
}

var defaultConfig = tierConfig{
	ceilings:    [4]int{tinyCeiling, smallCeiling, mediumCeiling, largeCeiling},
	maxPoolSize: MaxPoolSize,
	noPoolFloor: noPoolFloor,
}

func (c tierConfig) bucketFor(capacity int) int {
	for i, ceiling := range c.ceilings {
		if capacity <= ceiling {
			return i
		}
	}
	return 4
}

func (c tierConfig) roundUpCapacity(capacity int) int {
	if tier := c.bucketFor(capacity); tier < 4 {
		return c.ceilings[tier]
	}
	n := c.ceilings[3]
	for n < capacity {
		n <<= 1
	}
	return n
}

// New returns an empty pool using the package's built-in tier defaults.
func New() *Pool {
	return &Pool{cfg: defaultConfig}
}

// NewWithOptions returns an empty pool with tier ceilings, per-tier cap, and
// no-pool floor overridden by opts; zero fields fall back to the defaults
// New uses.
func NewWithOptions(opts Options) *Pool {
	return &Pool{cfg: opts.resolve()}
}

// Prewarm adds up to n empty buffers, each with capacity equal to the tier's
// ceiling, to each of the four bounded tiers (never past the per-tier cap),
// so the first requests under load don't pay allocation cost. The unbounded
// tier is left empty.
func (p *Pool) Prewarm(n int) {
	for tier, ceiling := range p.cfg.ceilings {
		t := &p.tiers[tier]
		t.mu.Lock()
		for i := 0; i < n && len(t.free) < p.cfg.maxPoolSize; i++ {
			t.free = append(t.free, make([]byte, 0, ceiling))
		}
		t.mu.Unlock()
	}
}

// bucketFor and roundUpCapacity are free-function forms of tierConfig's
// methods, evaluated against the package's default tier layout.
func bucketFor(capacity int) int       { return defaultConfig.bucketFor(capacity) }
func roundUpCapacity(capacity int) int { return defaultConfig.roundUpCapacity(capacity) }

// Get returns a buffer with capacity at least `capacity`, length 0. The
// returned buffer may be freshly allocated or recycled from the pool; the
// caller must call Put when done with it.
func (p *Pool) Get(capacity int) []byte {
	tier := p.cfg.bucketFor(capacity)
	want := p.cfg.roundUpCapacity(capacity)

	t := &p.tiers[tier]
	t.mu.Lock()
	if n := len(t.free); n > 0 {
		buf := t.free[n-1]
		t.free = t.free[:n-1]
		t.mu.Unlock()
		if cap(buf) >= capacity {
			return buf[:0]
		}
	} else {
		t.mu.Unlock()
	}
	return make([]byte, 0, want)
}

// Put returns buf to the pool. Buffers smaller than the no-pool floor are
// dropped rather than retained, since pooling them costs more than it
// saves.
func (p *Pool) Put(buf []byte) {
	if cap(buf) < p.cfg.noPoolFloor {
		return
	}
	tier := p.cfg.bucketFor(cap(buf))
	t := &p.tiers[tier]
	t.mu.Lock()
	if len(t.free) < p.cfg.maxPoolSize {
		t.free = append(t.free, buf[:0])
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
}

// PutObserved is Put, additionally reporting tier exhaustion through hooks
// (nil-safe) when the tier's free list was already at its configured cap.
func (p *Pool) PutObserved(buf []byte, hooks Hooks) {
	if cap(buf) < p.cfg.noPoolFloor {
		return
	}
	tier := p.cfg.bucketFor(cap(buf))
	t := &p.tiers[tier]
	t.mu.Lock()
	if len(t.free) < p.cfg.maxPoolSize {
		t.free = append(t.free, buf[:0])
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	if hooks != nil {
		hooks.PoolTierExhausted(p.cfg.roundUpCapacity(cap(buf)))
	}
}

// Stats reports the current free-list length per tier, for tests and
// diagnostics.
type Stats struct {
	Tiny, Small, Medium, Large, XLarge int
}

func (p *Pool) Stats() Stats {
	var s Stats
	lens := make([]int, 5)
	for i := range p.tiers {
		p.tiers[i].mu.Lock()
		lens[i] = len(p.tiers[i].free)
		p.tiers[i].mu.Unlock()
	}
	s.Tiny, s.Small, s.Medium, s.Large, s.XLarge = lens[0], lens[1], lens[2], lens[3], lens[4]
	return s
}

// PooledBuffer wraps a pool-owned slice with scope-guard release semantics:
// deferring Release is the common pattern, mirroring the Rust original's
// Drop-based return-to-pool.
type PooledBuffer struct {
	Buf      []byte
	pool     *Pool
	released bool
}

// GetScoped is Get wrapped in a PooledBuffer for defer-based release.
func (p *Pool) GetScoped(capacity int) *PooledBuffer {
	return &PooledBuffer{Buf: p.Get(capacity), pool: p}
}

// Release returns the buffer to its pool. Safe to call multiple times;
// only the first call has effect.
func (pb *PooledBuffer) Release() {
	if pb.released {
		return
	}
	pb.released = true
	pb.pool.Put(pb.Buf)
	pb.Buf = nil
}
