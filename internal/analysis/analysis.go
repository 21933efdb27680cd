// Package analysis provides signal measurements used to verify and report on
// conditioned audio: DC offset, RMS level, peak level, RMSE against a
// reference and single-tone amplitude.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-conditioner/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when two signals that must be compared
// sample by sample have different lengths.
var ErrLengthMismatch = errors.New("signal length mismatch")

// Channel extracts channel c of an interleaved buffer with the given channel
// count as float64.
func Channel[F simdops.Float](buf []F, c, channels int) []float64 {
	n := len(buf) / channels
	out := make([]float64, n)
	for i := range n {
		out[i] = float64(buf[i*channels+c])
	}
	return out
}

// Mean returns the arithmetic mean (the DC offset) of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// StdDev returns the sample standard deviation of x.
func StdDev(x []float64) float64 {
	if len(x) < minStdDevSamples {
		return 0
	}
	return stat.StdDev(x, nil)
}

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(simdops.SumSquares(x) / float64(len(x)))
}

// Peak returns the largest absolute sample value of x.
func Peak(x []float64) float64 {
	var peak float64
	for _, v := range x {
		peak = max(peak, math.Abs(v))
	}
	return peak
}

// RMSE returns the root-mean-square error between a and b.
// Empty inputs yield 0; inputs of different length yield ErrLengthMismatch.
func RMSE(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d samples", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}

	diff := make([]float64, len(a))
	for i := range a {
		diff[i] = a[i] - b[i]
	}
	return RMS(diff), nil
}

// ToneAmplitude estimates the peak amplitude of the sinusoid at freqHz in x
// from the magnitude of the nearest real-FFT bin.
//
// The estimate is exact when x spans a whole number of periods of the tone;
// otherwise spectral leakage lowers it.
func ToneAmplitude(x []float64, freqHz, sampleRate float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	bin := int(math.Round(freqHz * float64(n) / sampleRate))
	if bin < 0 || bin >= len(coeffs) {
		return 0
	}

	mag := math.Hypot(real(coeffs[bin]), imag(coeffs[bin]))
	if bin == 0 || (n%2 == 0 && bin == n/2) {
		return mag / float64(n)
	}
	return 2 * mag / float64(n)
}
