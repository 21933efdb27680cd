package testsignal

import (
	"fmt"
	"math"
)

// Case is one named harness input.
type Case struct {
	// Module is the harness directory the case belongs to (DcCut or NoiseGate).
	Module string

	// Index is the 1-based case number used in file names.
	Index int

	// Name describes the waveform.
	Name string

	prefix string
	gen    func(n int, sampleRate float64) []float64
}

// Generate returns n mono samples of the case at sampleRate.
func (c Case) Generate(n int, sampleRate float64) []float32 {
	return Float32(c.gen(n, sampleRate))
}

// ID returns the case stem, e.g. "dc_cut_case1".
func (c Case) ID() string {
	return fmt.Sprintf("%s_case%d", c.prefix, c.Index)
}

// InputFile returns the input CSV file name of the case.
func (c Case) InputFile() string {
	return c.ID() + "_input.csv"
}

// GoldenFile returns the reference output CSV file name of the case.
func (c Case) GoldenFile() string {
	return c.ID() + ".csv"
}

// OutputFile returns the file name the Go output of the case is written to.
func (c Case) OutputFile() string {
	return c.ID() + "_go.csv"
}

// DCCases are the DC blocker harness inputs.
var DCCases = []Case{
	{Module: ModuleDCCut, Index: 1, Name: "SinePlusDc", prefix: prefixDCCut, gen: sinePlusDC},
	{Module: ModuleDCCut, Index: 2, Name: "LowHighPlusDc", prefix: prefixDCCut, gen: lowHighPlusDC},
	{Module: ModuleDCCut, Index: 3, Name: "Step", prefix: prefixDCCut, gen: dcStep},
	{Module: ModuleDCCut, Index: 4, Name: "TrianglePlusDc", prefix: prefixDCCut, gen: trianglePlusDC},
	{Module: ModuleDCCut, Index: 5, Name: "DriftDc", prefix: prefixDCCut, gen: driftDC},
}

// GateCases are the noise gate harness inputs.
var GateCases = []Case{
	{Module: ModuleNoiseGate, Index: 1, Name: "NoisePlusBurst", prefix: prefixNoiseGate, gen: noisePlusBurst},
	{Module: ModuleNoiseGate, Index: 2, Name: "FadeInSine", prefix: prefixNoiseGate, gen: fadeInSine},
	{Module: ModuleNoiseGate, Index: 3, Name: "SlowNoise", prefix: prefixNoiseGate, gen: slowNoise},
	{Module: ModuleNoiseGate, Index: 4, Name: "ThresholdSquare", prefix: prefixNoiseGate, gen: thresholdSquare},
	{Module: ModuleNoiseGate, Index: 5, Name: "PhraseLike", prefix: prefixNoiseGate, gen: phraseLike},
}

func sinePlusDC(n int, fs float64) []float64 {
	return Sine(n, 1000, 0.5, 0.2, fs)
}

func lowHighPlusDC(n int, fs float64) []float64 {
	return Add(Sine(n, 50, 0.3, -0.15, fs), Sine(n, 5000, 0.2, 0, fs))
}

func dcStep(n int, fs float64) []float64 {
	return Step(n, int(0.1*fs), 0, 0.5)
}

func trianglePlusDC(n int, fs float64) []float64 {
	return Triangle(n, 200, 0.4, 0.3, fs)
}

func driftDC(n int, fs float64) []float64 {
	x := Sine(n, 440, 0.3, 0, fs)
	for i := range x {
		x[i] += -0.2 + 0.4*float64(i)/float64(max(n-1, 1))
	}
	return x
}

func noisePlusBurst(n int, fs float64) []float64 {
	x := Noise(n, 0.01, 1)
	burst := Sine(n, 1000, 0.5, 0, fs)
	start, end := int(0.3*fs), int(0.6*fs)
	for i := start; i < min(end, n); i++ {
		x[i] += burst[i]
	}
	return x
}

func fadeInSine(n int, fs float64) []float64 {
	x := Sine(n, 440, 1, 0, fs)
	for i := range x {
		x[i] *= 0.5 * float64(i) / float64(max(n-1, 1))
	}
	return x
}

func slowNoise(n int, fs float64) []float64 {
	x := Noise(n, 1, 3)
	for i := range x {
		// Envelope swings between 0.02 and 0.08 at 0.5 Hz.
		env := 0.05 + 0.03*math.Sin(2*math.Pi*0.5*float64(i)/fs)
		x[i] *= env
	}
	return x
}

func thresholdSquare(n int, fs float64) []float64 {
	levels := []float64{0.03, 0.045, 0.06, 0.045}
	segment := max(int(0.05*fs), 1)
	x := make([]float64, n)
	for i := range x {
		level := levels[(i/segment)%len(levels)]
		if (i/segment)%2 == 1 {
			level = -level
		}
		x[i] = level
	}
	return x
}

func phraseLike(n int, fs float64) []float64 {
	x := Noise(n, 0.005, 5)
	words := []struct{ start, length, freq, amp float64 }{
		{0.05, 0.12, 220, 0.4},
		{0.22, 0.08, 330, 0.3},
		{0.40, 0.20, 180, 0.5},
		{0.70, 0.10, 260, 0.25},
	}
	for _, w := range words {
		start := int(w.start * fs)
		length := int(w.length * fs)
		for k := range length {
			i := start + k
			if i >= n {
				break
			}
			// Raised-cosine envelope per word.
			env := 0.5 - 0.5*math.Cos(2*math.Pi*float64(k)/float64(length))
			x[i] += w.amp * env * math.Sin(2*math.Pi*w.freq*float64(k)/fs)
		}
	}
	return x
}
