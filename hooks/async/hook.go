// Package asynchook wraps an arrowcodec.Hooks implementation with a bounded
// queue and a small worker pool, so hook delivery never blocks the codec's
// hot path. Events are dropped on backpressure.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{ChecksumMismatchEvery: 1})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/chproto/arrowcodec"
)

type Hooks struct {
	inner arrowcodec.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ arrowcodec.Hooks = (*Hooks)(nil)

func New(inner arrowcodec.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ChecksumMismatch(expectedHex, gotHex string) {
	h.try(func() { h.inner.ChecksumMismatch(expectedHex, gotHex) })
}
func (h *Hooks) UnexpectedMethod(want, got byte) {
	h.try(func() { h.inner.UnexpectedMethod(want, got) })
}
func (h *Hooks) FrameTooLarge(compressedSize, decompressedSize uint32) {
	h.try(func() { h.inner.FrameTooLarge(compressedSize, decompressedSize) })
}
func (h *Hooks) PoolTierExhausted(tierCeiling int) {
	h.try(func() { h.inner.PoolTierExhausted(tierCeiling) })
}
func (h *Hooks) SparseCarryRetained(trailingDefaults uint64, pendingValue bool) {
	h.try(func() { h.inner.SparseCarryRetained(trailingDefaults, pendingValue) })
}
