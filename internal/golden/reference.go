package golden

import "math"

// GateParams mirrors the noise gate settings the reference gate is run with.
type GateParams struct {
	ThOpen      float64
	ThClose     float64
	AttackTime  float64 // seconds
	ReleaseTime float64 // seconds
}

// ReferenceDCCut runs the DC blocker recurrence y = x - x1 + a*y1 over mono
// x in float64 and narrows each output once.
func ReferenceDCCut(x []float32, fs, fc float64) []float32 {
	a := math.Exp(-2 * math.Pi * fc / fs)
	out := make([]float32, len(x))
	var x1, y1 float64
	for i, v := range x {
		xn := float64(v)
		y := xn - x1 + a*y1
		x1, y1 = xn, y
		out[i] = float32(y)
	}
	return out
}

// ReferenceGate runs the hysteresis gate over mono x in float64. The gain
// follows 1 with the attack coefficient while open and 0 with the release
// coefficient while closed.
func ReferenceGate(x []float32, fs float64, p GateParams) []float32 {
	aAttack, aRelease := smoothing(fs, p.AttackTime), smoothing(fs, p.ReleaseTime)

	out := make([]float32, len(x))
	var gain float64
	open := false
	for i, v := range x {
		xn := float64(v)
		level := math.Abs(xn)
		if open && level <= p.ThClose {
			open = false
		} else if !open && level >= p.ThOpen {
			open = true
		}

		target, a := 0.0, aRelease
		if open {
			target, a = 1.0, aAttack
		}
		gain = a*gain + (1-a)*target
		out[i] = float32(gain * xn)
	}
	return out
}

// smoothing is exp(-1/(fs*tau)), or 0 (instant) for a non-positive tau.
func smoothing(fs, tau float64) float64 {
	if tau <= 0 {
		return 0
	}
	return math.Exp(-1 / (fs * tau))
}
