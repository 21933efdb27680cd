package engine

import "github.com/tphakala/go-audio-conditioner/internal/simdops"

// dcChannel is the feedback memory of one channel.
type dcChannel struct {
	x1 float64 // previous input
	y1 float64 // previous output
}

// step runs y[n] = x[n] - x[n-1] + a*y[n-1] for one sample.
func (s *dcChannel) step(x, a float64) float64 {
	y := x - s.x1 + a*s.y1
	s.x1 = x
	s.y1 = y
	return y
}

// DCBlocker is a one-pole high-pass filter removing the DC offset of each
// channel independently.
//
// The filter has a zero at DC and a pole at radius a = exp(-2π·fc/fs).
type DCBlocker[F simdops.Float] struct {
	a  float64
	ch [Channels]dcChannel
}

// NewDCBlocker creates a DC blocker with the given cutoff frequency.
func NewDCBlocker[F simdops.Float](sampleRate, cutoffHz float64) *DCBlocker[F] {
	d := &DCBlocker[F]{}
	d.Init(sampleRate, cutoffHz)
	return d
}

// Init derives the pole coefficient and zeroes the channel memory.
func (d *DCBlocker[F]) Init(sampleRate, cutoffHz float64) {
	d.a = PoleCoefficient(sampleRate, cutoffHz)
	d.Reset()
}

// Reset zeroes the channel memory.
func (d *DCBlocker[F]) Reset() {
	d.ch = [Channels]dcChannel{}
}

// Coefficient returns the pole coefficient a.
func (d *DCBlocker[F]) Coefficient() float64 {
	return d.a
}

// Process filters frames interleaved frames from src into dst.
func (d *DCBlocker[F]) Process(dst, src []F, frames int) {
	a := d.a
	ch := d.ch

	for n := range frames {
		base := n * Channels
		for c := range ch {
			dst[base+c] = F(ch[c].step(float64(src[base+c]), a))
		}
	}

	d.ch = ch
}
