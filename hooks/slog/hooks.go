// Package sloghooks implements arrowcodec.Hooks on top of log/slog, with
// sampling counters so a noisy event (e.g. checksum mismatches under a
// flaky link) doesn't flood the log.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/chproto/arrowcodec"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ChecksumMismatchEvery uint64
	FrameTooLargeEvery    uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	checksumCtr  atomic.Uint64
	oversizedCtr atomic.Uint64
}

var _ arrowcodec.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) ChecksumMismatch(expectedHex, gotHex string) {
	if h.l == nil || !sample(h.opts.ChecksumMismatchEvery, &h.checksumCtr) {
		return
	}
	h.l.Warn("arrowcodec.checksum_mismatch", "expected", expectedHex, "got", gotHex)
}

func (h *Hooks) UnexpectedMethod(want, got byte) {
	if h.l == nil {
		return
	}
	h.l.Warn("arrowcodec.unexpected_method", "want", want, "got", got)
}

func (h *Hooks) FrameTooLarge(compressedSize, decompressedSize uint32) {
	if h.l == nil || !sample(h.opts.FrameTooLargeEvery, &h.oversizedCtr) {
		return
	}
	h.l.Warn("arrowcodec.frame_too_large",
		"compressed_size", compressedSize,
		"decompressed_size", decompressedSize)
}

func (h *Hooks) PoolTierExhausted(tierCeiling int) {
	if h.l == nil {
		return
	}
	h.l.Debug("arrowcodec.pool_tier_exhausted", "tier_ceiling", tierCeiling)
}

func (h *Hooks) SparseCarryRetained(trailingDefaults uint64, pendingValue bool) {
	if h.l == nil {
		return
	}
	h.l.Debug("arrowcodec.sparse_carry_retained",
		"trailing_defaults", trailingDefaults,
		"pending_value", pendingValue)
}
