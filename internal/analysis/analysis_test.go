package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, freq, amp, offset, sampleRate float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp*math.Sin(2*math.Pi*freq*float64(i)/sampleRate) + offset
	}
	return x
}

func TestChannel(t *testing.T) {
	buf := []float32{1, 2, 3, 4, 5, 6}
	assert.Equal(t, []float64{1, 3, 5}, Channel(buf, 0, 2))
	assert.Equal(t, []float64{2, 4, 6}, Channel(buf, 1, 2))
}

func TestMeanAndStdDev(t *testing.T) {
	x := sine(48000, 1000, 0.5, 0.2, 48000)
	assert.InDelta(t, 0.2, Mean(x), 1e-9)
	assert.InDelta(t, 0.5/math.Sqrt2, StdDev(x), 1e-4)
	assert.Zero(t, Mean(nil))
	assert.Zero(t, StdDev([]float64{1}))
}

func TestRMSAndPeak(t *testing.T) {
	x := sine(4800, 100, 0.8, 0, 48000)
	assert.InDelta(t, 0.8/math.Sqrt2, RMS(x), 1e-9)
	assert.InDelta(t, 0.8, Peak(x), 1e-9)
	assert.Zero(t, RMS(nil))
	assert.Equal(t, 3.0, Peak([]float64{1, -3, 2}))
}

func TestRMSE(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{1, 2, 3, 6}

	e, err := RMSE(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, e, 1e-12)

	e, err = RMSE(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, e)

	_, err = RMSE(a, b[:3])
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestToneAmplitude(t *testing.T) {
	tests := []struct {
		name   string
		freq   float64
		amp    float64
		offset float64
	}{
		{"1kHz", 1000, 0.5, 0},
		{"1kHz_with_dc", 1000, 0.5, 0.2},
		{"440Hz", 440, 0.9, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := sine(48000, tt.freq, tt.amp, tt.offset, 48000)
			assert.InDelta(t, tt.amp, ToneAmplitude(x, tt.freq, 48000), 1e-6)
			assert.InDelta(t, math.Abs(tt.offset), ToneAmplitude(x, 0, 48000), 1e-6)
		})
	}

	assert.Zero(t, ToneAmplitude(nil, 1000, 48000))
	assert.Zero(t, ToneAmplitude(make([]float64, 16), 1e6, 48000))
}

func TestAnalyze(t *testing.T) {
	buf := []float32{0.5, -1, 0.5, 1, 0.5, -1, 0.5, 1}
	r := Analyze(buf, 2)

	require.Len(t, r.Channels, 2)
	assert.Equal(t, 4, r.Frames)
	assert.InDelta(t, 0.5, r.Channels[0].DCOffset, 1e-12)
	assert.InDelta(t, 0.5, r.Channels[0].RMS, 1e-12)
	assert.InDelta(t, 0.0, r.Channels[1].DCOffset, 1e-12)
	assert.InDelta(t, 1.0, r.Channels[1].Peak, 1e-12)
}

func TestAnalyze_StdDevIgnoresDC(t *testing.T) {
	buf := make([]float64, 0, 2*4800)
	for _, v := range sine(4800, 1000, 0.5, 0.3, 48000) {
		buf = append(buf, v, v-0.3)
	}

	r := Analyze(buf, 2)
	require.Len(t, r.Channels, 2)
	assert.InDelta(t, r.Channels[1].StdDev, r.Channels[0].StdDev, 1e-12)
	assert.InDelta(t, 0.5/math.Sqrt2, r.Channels[0].StdDev, 1e-4)
	assert.Greater(t, r.Channels[0].RMS, r.Channels[0].StdDev)
}

func TestReport_MergeSingleFrames(t *testing.T) {
	var got Report
	for _, v := range []float64{1, 2, 3, 4} {
		got = got.Merge(Analyze([]float64{v}, 1))
	}
	assert.InDelta(t, StdDev([]float64{1, 2, 3, 4}), got.Channels[0].StdDev, 1e-12)
}

func TestReport_MergeMatchesSinglePass(t *testing.T) {
	buf := make([]float64, 0, 2*300)
	for i := range 300 {
		buf = append(buf, 0.1+0.4*math.Sin(float64(i)*0.05), -0.2*math.Cos(float64(i)*0.11))
	}

	want := Analyze(buf, 2)

	var got Report
	for _, cut := range [][2]int{{0, 70}, {70, 71}, {71, 300}} {
		got = got.Merge(Analyze(buf[cut[0]*2:cut[1]*2], 2))
	}

	require.Len(t, got.Channels, 2)
	assert.Equal(t, want.Frames, got.Frames)
	for c := range want.Channels {
		assert.InDelta(t, want.Channels[c].DCOffset, got.Channels[c].DCOffset, 1e-12)
		assert.InDelta(t, want.Channels[c].RMS, got.Channels[c].RMS, 1e-12)
		assert.InDelta(t, want.Channels[c].Peak, got.Channels[c].Peak, 0)
		assert.InDelta(t, want.Channels[c].StdDev, got.Channels[c].StdDev, 1e-12)
	}

	assert.Equal(t, want, want.Merge(Report{}))
}
