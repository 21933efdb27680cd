package conditioner

import "github.com/tphakala/go-audio-conditioner/internal/engine"

// DCBlocker removes the DC offset of each channel of an interleaved stereo
// stream with the one-pole high-pass y[n] = x[n] - x[n-1] + a·y[n-1], where
// a = exp(-2π·fc/fs).
//
// The recurrence runs in float64; samples are narrowed to float32 only on
// output. The cutoff is not validated: it must satisfy 0 < fc < fs/2 for
// 0 < a < 1. Use [Config.Validate] when the values come from user input.
type DCBlocker struct {
	core       *engine.DCBlocker[float32]
	sampleRate float64
	cutoffHz   float64
}

// NewDCBlocker creates a DC blocker with zeroed channel memory.
func NewDCBlocker(sampleRate, cutoffHz float64) *DCBlocker {
	d := &DCBlocker{core: &engine.DCBlocker[float32]{}}
	d.Init(sampleRate, cutoffHz)
	return d
}

// Init recomputes the pole coefficient and zeroes the channel memory.
func (d *DCBlocker) Init(sampleRate, cutoffHz float64) {
	d.sampleRate = sampleRate
	d.cutoffHz = cutoffHz
	d.core.Init(sampleRate, cutoffHz)
}

// Process filters frames stereo frames from src into dst. dst may alias src.
// A frames value of 0 is a no-op.
func (d *DCBlocker) Process(dst, src []float32, frames int) {
	d.core.Process(dst, src, frames)
}

// Reset zeroes the channel memory.
func (d *DCBlocker) Reset() {
	d.core.Reset()
}

// Name returns "dcblock".
func (d *DCBlocker) Name() string {
	return nameDCBlocker
}

// Coefficient returns the pole coefficient a.
func (d *DCBlocker) Coefficient() float64 {
	return d.core.Coefficient()
}

// GetInfo describes the blocker.
func (d *DCBlocker) GetInfo() Info {
	return Info{
		Name:       nameDCBlocker,
		SampleRate: d.sampleRate,
		Coefficients: map[string]float64{
			"cutoff_hz": d.cutoffHz,
			"a":         d.core.Coefficient(),
		},
	}
}

// NoiseGateParams configures a [NoiseGate].
type NoiseGateParams struct {
	// ThOpen is the amplitude at or above which a closed gate opens.
	ThOpen float64

	// ThClose is the amplitude at or below which an open gate closes.
	// Callers must keep ThClose <= ThOpen; the gate chatters otherwise.
	ThClose float64

	// AttackTime is the gain rise time constant in seconds. 0 snaps instantly.
	AttackTime float64

	// ReleaseTime is the gain fall time constant in seconds. 0 snaps instantly.
	ReleaseTime float64
}

// DefaultNoiseGateParams returns an open threshold of 0.05, a close threshold
// of 0.04, 5 ms attack and 50 ms release.
func DefaultNoiseGateParams() NoiseGateParams {
	return NoiseGateParams{
		ThOpen:      defaultThOpen,
		ThClose:     defaultThClose,
		AttackTime:  defaultAttackTime,
		ReleaseTime: defaultReleaseTime,
	}
}

func (p *NoiseGateParams) toEngine() engine.GateParams {
	return engine.GateParams{
		ThOpen:      p.ThOpen,
		ThClose:     p.ThClose,
		AttackTime:  p.AttackTime,
		ReleaseTime: p.ReleaseTime,
	}
}

// NoiseGate is a per-channel hysteresis gate with exponential attack/release
// gain smoothing.
//
// Each channel latches open when |x| >= ThOpen and closed when |x| <= ThClose,
// holding its state in between. The gain moves toward 1 with the attack
// coefficient while open and toward 0 with the release coefficient while
// closed, and multiplies the sample. The gate starts closed with zero gain.
type NoiseGate struct {
	core       *engine.NoiseGate[float32]
	sampleRate float64
	params     NoiseGateParams
}

// NewNoiseGate creates a closed noise gate.
func NewNoiseGate(sampleRate float64, p NoiseGateParams) *NoiseGate {
	g := &NoiseGate{core: &engine.NoiseGate[float32]{}}
	g.Init(sampleRate, p)
	return g
}

// Init derives the smoothing coefficients, zeroes the gains and closes both channels.
func (g *NoiseGate) Init(sampleRate float64, p NoiseGateParams) {
	g.sampleRate = sampleRate
	g.params = p
	g.core.Init(sampleRate, p.toEngine())
}

// Process gates frames stereo frames from src into dst. dst may alias src.
func (g *NoiseGate) Process(dst, src []float32, frames int) {
	g.core.Process(dst, src, frames)
}

// Reset zeroes the gains and closes both channels.
func (g *NoiseGate) Reset() {
	g.core.Reset()
}

// Name returns "gate".
func (g *NoiseGate) Name() string {
	return nameNoiseGate
}

// Params returns the parameters the gate was initialized with.
func (g *NoiseGate) Params() NoiseGateParams {
	return g.params
}

// Gains returns the current smoothed gain of each channel.
func (g *NoiseGate) Gains() (left, right float64) {
	return g.core.Gain(channelLeft), g.core.Gain(channelRight)
}

// IsOpen reports whether channel ch (0 = left, 1 = right) is open.
func (g *NoiseGate) IsOpen(ch int) bool {
	return g.core.IsOpen(ch)
}

// GetInfo describes the gate.
func (g *NoiseGate) GetInfo() Info {
	attack, release := g.core.Coefficients()
	return Info{
		Name:       nameNoiseGate,
		SampleRate: g.sampleRate,
		Coefficients: map[string]float64{
			"th_open":   g.params.ThOpen,
			"th_close":  g.params.ThClose,
			"a_attack":  attack,
			"a_release": release,
		},
	}
}
