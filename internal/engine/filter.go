// Package engine implements the per-sample DC blocking and noise gate cores.
//
// Every filter works on interleaved stereo buffers ([L0, R0, L1, R1, ...])
// and keeps one mono sub-state per channel. All arithmetic runs in float64
// regardless of the sample type F; results are narrowed to F on output.
//
// Nothing in this package validates configuration or buffer sizes. Callers
// must supply at least 2*frames samples in both src and dst; shorter slices
// panic with an index out of range.
package engine

import "github.com/tphakala/go-audio-conditioner/internal/simdops"

// Filter is a stateful stream filter over interleaved stereo frames.
type Filter[F simdops.Float] interface {
	// Process filters frames stereo frames from src into dst.
	// dst may alias src.
	Process(dst, src []F, frames int)

	// Reset clears the filter memory while keeping its coefficients.
	Reset()
}

// Ensure implementations satisfy the interface
var (
	_ Filter[float32] = (*DCBlocker[float32])(nil)
	_ Filter[float64] = (*DCBlocker[float64])(nil)
	_ Filter[float32] = (*NoiseGate[float32])(nil)
	_ Filter[float64] = (*NoiseGate[float64])(nil)
)
