package testsignal

// Waveform constants
const (
	half          = 0.5
	triangleScale = 4.0

	// pcgStream decorrelates the second PCG state word from the seed.
	pcgStream = 0x9e3779b97f4a7c15
)

// Harness file prefixes and module directories.
const (
	ModuleDCCut     = "DcCut"
	ModuleNoiseGate = "NoiseGate"

	prefixDCCut     = "dc_cut"
	prefixNoiseGate = "noise_gate"
)
