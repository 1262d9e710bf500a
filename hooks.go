package arrowcodec

// Hooks are lightweight callbacks for high-signal codec events.
// Implementations MUST be cheap and non-blocking; do not perform I/O.
// If work may block, buffer it and drop on backpressure (best effort) —
// see hooks/async for a ready-made wrapper.
type Hooks interface {
	// ChecksumMismatch fires when a frame's recomputed CityHash-128 disagrees
	// with the stored value. expected/got are hex-formatted 128-bit values.
	ChecksumMismatch(expectedHex, gotHex string)
	// UnexpectedMethod fires when a frame's method byte disagrees with the
	// method the caller declared it expected to read.
	UnexpectedMethod(want, got byte)
	// FrameTooLarge fires when a decoded frame's compressed/decompressed size
	// exceeds the limits in the wire format.
	FrameTooLarge(compressedSize, decompressedSize uint32)
	// PoolTierExhausted fires when a buffer pool tier's bounded queue is full
	// and a released buffer is dropped instead of recycled.
	PoolTierExhausted(tierCeiling int)
	// SparseCarryRetained fires when a sparse offsets read ends mid-granule
	// and carry state must be retained across the read boundary.
	SparseCarryRetained(trailingDefaults uint64, pendingValue bool)
}

// NopHooks is a default no-op.
type NopHooks struct{}

func (NopHooks) ChecksumMismatch(string, string)  {}
func (NopHooks) UnexpectedMethod(byte, byte)      {}
func (NopHooks) FrameTooLarge(uint32, uint32)     {}
func (NopHooks) PoolTierExhausted(int)            {}
func (NopHooks) SparseCarryRetained(uint64, bool) {}

// Multi returns a Hooks that fans out to all provided hooks, in order.
// Nil entries are ignored. Panics from a hook propagate to the caller.
//
// example usage:
//
//	logH := sloghooks.New(slog.Default(), sloghooks.Options{ChecksumMismatchEvery: 1})
//	metH := myMetricsHooks{...}
//
//	hooks := arrowcodec.Multi(logH, metH)
//	// or isolate backpressure per hook:
//	hooks := arrowcodec.Multi(asynchook.New(logH, 1, 1000), asynchook.New(metH, 1, 1000))
func Multi(hs ...Hooks) Hooks {
	nn := make([]Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nn = append(nn, h)
		}
	}
	return multiHooks(nn)
}

type multiHooks []Hooks

func (m multiHooks) ChecksumMismatch(expectedHex, gotHex string) {
	for _, h := range m {
		h.ChecksumMismatch(expectedHex, gotHex)
	}
}
func (m multiHooks) UnexpectedMethod(want, got byte) {
	for _, h := range m {
		h.UnexpectedMethod(want, got)
	}
}
func (m multiHooks) FrameTooLarge(compressedSize, decompressedSize uint32) {
	for _, h := range m {
		h.FrameTooLarge(compressedSize, decompressedSize)
	}
}
func (m multiHooks) PoolTierExhausted(tierCeiling int) {
	for _, h := range m {
		h.PoolTierExhausted(tierCeiling)
	}
}
func (m multiHooks) SparseCarryRetained(trailingDefaults uint64, pendingValue bool) {
	for _, h := range m {
		h.SparseCarryRetained(trailingDefaults, pendingValue)
	}
}
