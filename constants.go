package conditioner

// Channel layout
const (
	stereoChannels = 2 // Interleaved channel count of every buffer
	channelLeft    = 0
	channelRight   = 1
)

// Default parameters
const (
	defaultCutoffHz    = 20.0  // DC blocker corner frequency
	defaultThOpen      = 0.05  // Gate open threshold (linear amplitude)
	defaultThClose     = 0.04  // Gate close threshold (linear amplitude)
	defaultAttackTime  = 0.005 // 5 ms
	defaultReleaseTime = 0.050 // 50 ms
)

// Validation
const (
	nyquistDivisor = 2 // Cutoff must stay below SampleRate/nyquistDivisor
)

// Filter names
const (
	nameDCBlocker  = "dcblock"
	nameNoiseGate  = "gate"
	chainSeparator = " -> "
)
