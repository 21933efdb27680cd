// Package testsignal generates the deterministic mono waveforms used as
// harness inputs for the DC blocker and the noise gate.
package testsignal

import (
	"math"
	"math/rand/v2"
)

// Sine returns amp·sin(2π·freq·t) + offset sampled at sampleRate.
func Sine(n int, freq, amp, offset, sampleRate float64) []float64 {
	x := make([]float64, n)
	w := 2 * math.Pi * freq / sampleRate
	for i := range x {
		x[i] = amp*math.Sin(w*float64(i)) + offset
	}
	return x
}

// Step returns low before sample at and high from it on.
func Step(n, at int, low, high float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		if i >= at {
			x[i] = high
		} else {
			x[i] = low
		}
	}
	return x
}

// Triangle returns a triangle wave of peak amplitude amp around offset.
func Triangle(n int, freq, amp, offset, sampleRate float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		phase := math.Mod(freq*float64(i)/sampleRate, 1)
		// 4·|phase - 0.5| - 1 maps [0,1) onto a triangle in [-1, 1].
		x[i] = amp*(triangleScale*math.Abs(phase-half)-1) + offset
	}
	return x
}

// Noise returns uniform white noise in [-amp, amp] from a seeded generator.
func Noise(n int, amp float64, seed uint64) []float64 {
	rng := newRand(seed)
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * (2*rng.Float64() - 1)
	}
	return x
}

// Add sums signals sample by sample into a new slice sized to the first.
func Add(first []float64, rest ...[]float64) []float64 {
	out := append([]float64(nil), first...)
	for _, s := range rest {
		for i := range min(len(out), len(s)) {
			out[i] += s[i]
		}
	}
	return out
}

// Float32 narrows x to float32 samples.
func Float32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}
