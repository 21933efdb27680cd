package conditioner

import "github.com/tphakala/go-audio-conditioner/internal/simdops"

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000
)

// DCCut removes DC from frames stereo frames of src into dst using a freshly
// initialized [DCBlocker]. dst may alias src.
func DCCut(dst, src []float32, frames int, sampleRate, cutoffHz float64) {
	NewDCBlocker(sampleRate, cutoffHz).Process(dst, src, frames)
}

// Gate applies a freshly initialized (closed, zero-gain) [NoiseGate] to frames
// stereo frames of src, writing dst. dst may alias src.
func Gate(dst, src []float32, frames int, sampleRate float64, p NoiseGateParams) {
	NewNoiseGate(sampleRate, p).Process(dst, src, frames)
}

// Condition validates cfg and runs a fresh chain over the whole interleaved
// stereo buffer src, writing dst. A trailing odd sample is ignored and the
// matching dst sample is left untouched.
func Condition(dst, src []float32, cfg *Config) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	return c.Process(dst, src, len(src)/stereoChannels)
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) []float32 {
	n := min(len(left), len(right))
	result := make([]float32, n*stereoChannels)
	simdops.For[float32]().Interleave2(result, left[:n], right[:n])
	return result
}

// DuplicateMonoToStereo copies every mono sample into both channels.
func DuplicateMonoToStereo(mono []float32) []float32 {
	result := make([]float32, len(mono)*stereoChannels)
	simdops.Duplicate(result, mono)
	return result
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32) {
	n := len(interleaved) / stereoChannels
	left = make([]float32, n)
	right = make([]float32, n)
	for i := range n {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
