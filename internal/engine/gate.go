package engine

import (
	"math"

	"github.com/tphakala/go-audio-conditioner/internal/simdops"
)

// GateParams configures a NoiseGate.
type GateParams struct {
	// ThOpen is the amplitude at or above which a closed gate opens.
	ThOpen float64

	// ThClose is the amplitude at or below which an open gate closes.
	// Expected to be <= ThOpen; not enforced.
	ThClose float64

	// AttackTime is the gain rise time constant in seconds (0 = instant).
	AttackTime float64

	// ReleaseTime is the gain fall time constant in seconds (0 = instant).
	ReleaseTime float64
}

// gateChannel is the latch and smoothed gain of one channel.
type gateChannel struct {
	gain float64
	open bool
}

// NoiseGate is a hysteresis gate with exponential attack/release smoothing
// applied independently to each channel.
//
// The level detector is the instantaneous absolute sample value. The
// smoothing coefficient follows the latch state: attack while open, release
// while closed. The gain is a convex blend of a value in [0, 1] and a target
// in {0, 1}, so it stays in [0, 1] as long as both coefficients do.
type NoiseGate[F simdops.Float] struct {
	thOpen   float64
	thClose  float64
	aAttack  float64
	aRelease float64

	ch [Channels]gateChannel
}

// NewNoiseGate creates a closed noise gate.
func NewNoiseGate[F simdops.Float](sampleRate float64, p GateParams) *NoiseGate[F] {
	g := &NoiseGate[F]{}
	g.Init(sampleRate, p)
	return g
}

// Init derives the smoothing coefficients, copies the thresholds, zeroes the
// gains and closes both latches.
func (g *NoiseGate[F]) Init(sampleRate float64, p GateParams) {
	g.aAttack = SmoothingCoefficient(sampleRate, p.AttackTime)
	g.aRelease = SmoothingCoefficient(sampleRate, p.ReleaseTime)
	g.thOpen = p.ThOpen
	g.thClose = p.ThClose
	g.Reset()
}

// Reset zeroes the gains and closes both latches.
func (g *NoiseGate[F]) Reset() {
	g.ch = [Channels]gateChannel{}
}

// Gain returns the current smoothed gain of channel c.
func (g *NoiseGate[F]) Gain(c int) float64 {
	return g.ch[c].gain
}

// IsOpen reports whether the latch of channel c is open.
func (g *NoiseGate[F]) IsOpen(c int) bool {
	return g.ch[c].open
}

// Coefficients returns the attack and release smoothing coefficients.
func (g *NoiseGate[F]) Coefficients() (attack, release float64) {
	return g.aAttack, g.aRelease
}

// Thresholds returns the open and close thresholds.
func (g *NoiseGate[F]) Thresholds() (open, closed float64) {
	return g.thOpen, g.thClose
}

// Process gates frames interleaved frames from src into dst.
func (g *NoiseGate[F]) Process(dst, src []F, frames int) {
	ch := g.ch

	for n := range frames {
		base := n * Channels
		for c := range ch {
			x := float64(src[base+c])
			dst[base+c] = F(g.step(&ch[c], x) * x)
		}
	}

	g.ch = ch
}

// step updates the latch and gain of one channel and returns the new gain.
func (g *NoiseGate[F]) step(s *gateChannel, x float64) float64 {
	level := math.Abs(x)

	if s.open {
		if level <= g.thClose {
			s.open = false
		}
	} else if level >= g.thOpen {
		s.open = true
	}

	target, a := gainClosed, g.aRelease
	if s.open {
		target, a = gainOpen, g.aAttack
	}

	s.gain = a*s.gain + (1.0-a)*target
	return s.gain
}
