package engine

import "math"

// PoleCoefficient returns the feedback coefficient a = exp(-2π·fc/fs) of a
// one-pole DC blocker.
//
// The result lies in (0, 1) only when 0 < cutoffHz < sampleRate/2. Other
// values are not rejected; they yield an unstable or meaningless filter.
func PoleCoefficient(sampleRate, cutoffHz float64) float64 {
	return math.Exp(-twoPi * cutoffHz / sampleRate)
}

// SmoothingCoefficient returns the one-pole smoothing coefficient
// exp(-1/(fs·τ)) for a time constant tau in seconds, or 0 when tau <= 0.
func SmoothingCoefficient(sampleRate, tau float64) float64 {
	if tau <= 0 {
		return instantCoefficient
	}
	return math.Exp(-1.0 / (sampleRate * tau))
}
