package testsignal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSampleRate = 48000.0
	testSamples    = 48000
)

func TestCases_Deterministic(t *testing.T) {
	for _, c := range append(append([]Case{}, DCCases...), GateCases...) {
		t.Run(c.ID(), func(t *testing.T) {
			a := c.Generate(testSamples, testSampleRate)
			b := c.Generate(testSamples, testSampleRate)
			require.Len(t, a, testSamples)
			assert.Equal(t, a, b)
			for i, v := range a {
				require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "sample %d", i)
				require.LessOrEqual(t, math.Abs(float64(v)), 1.0, "sample %d", i)
			}
		})
	}
}

func TestCase_FileNames(t *testing.T) {
	c := DCCases[0]
	assert.Equal(t, "dc_cut_case1", c.ID())
	assert.Equal(t, "dc_cut_case1_input.csv", c.InputFile())
	assert.Equal(t, "dc_cut_case1.csv", c.GoldenFile())
	assert.Equal(t, "dc_cut_case1_go.csv", c.OutputFile())
	assert.Equal(t, ModuleDCCut, c.Module)

	g := GateCases[4]
	assert.Equal(t, "noise_gate_case5", g.ID())
	assert.Equal(t, "PhraseLike", g.Name)
}

func TestStep(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 1, 1}, Step(4, 2, 0, 1))
}

func TestTriangle(t *testing.T) {
	x := Triangle(48, 1000, 1, 0, 48000)
	assert.InDelta(t, 1.0, x[0], 1e-12)
	assert.InDelta(t, -1.0, x[24], 1e-12)
	assert.InDelta(t, 0.0, x[12], 1e-12)
}

func TestNoise_Bounded(t *testing.T) {
	x := Noise(10000, 0.25, 42)
	for _, v := range x {
		require.LessOrEqual(t, math.Abs(v), 0.25)
	}
	assert.NotEqual(t, x, Noise(10000, 0.25, 43))
}

func TestAdd(t *testing.T) {
	assert.Equal(t, []float64{2, 4, 3}, Add([]float64{1, 2, 3}, []float64{1, 2}))
}
