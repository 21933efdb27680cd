package conditioner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-conditioner/internal/testsignal"
	"github.com/tphakala/go-audio-conditioner/internal/testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"dc only", func(c *Config) { c.Gate = false }, false},
		{"gate only", func(c *Config) { c.DCBlock = false }, false},
		{"no stage", func(c *Config) { c.DCBlock, c.Gate = false, false }, true},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, true},
		{"negative sample rate", func(c *Config) { c.SampleRate = -48000 }, true},
		{"NaN sample rate", func(c *Config) { c.SampleRate = math.NaN() }, true},
		{"Inf sample rate", func(c *Config) { c.SampleRate = math.Inf(1) }, true},
		{"zero cutoff", func(c *Config) { c.CutoffHz = 0 }, true},
		{"cutoff at nyquist", func(c *Config) { c.CutoffHz = 24000 }, true},
		{"cutoff above nyquist", func(c *Config) { c.CutoffHz = 30000 }, true},
		{"bad cutoff ignored when dc disabled", func(c *Config) { c.DCBlock, c.CutoffHz = false, -1 }, false},
		{"thresholds inverted", func(c *Config) { c.GateParams.ThOpen, c.GateParams.ThClose = 0.04, 0.05 }, true},
		{"thresholds equal", func(c *Config) { c.GateParams.ThOpen, c.GateParams.ThClose = 0.05, 0.05 }, false},
		{"negative close threshold", func(c *Config) { c.GateParams.ThClose = -0.01 }, true},
		{"NaN open threshold", func(c *Config) { c.GateParams.ThOpen = math.NaN() }, true},
		{"negative attack", func(c *Config) { c.GateParams.AttackTime = -0.001 }, true},
		{"negative release", func(c *Config) { c.GateParams.ReleaseTime = -0.001 }, true},
		{"zero time constants", func(c *Config) { c.GateParams.AttackTime, c.GateParams.ReleaseTime = 0, 0 }, false},
		{"bad gate ignored when gate disabled", func(c *Config) { c.Gate, c.GateParams.ThClose = false, 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 48000.0, cfg.SampleRate, 0)
	assert.True(t, cfg.DCBlock)
	assert.True(t, cfg.Gate)
	assert.InDelta(t, 20.0, cfg.CutoffHz, 0)
	assert.Equal(t, NoiseGateParams{ThOpen: 0.05, ThClose: 0.04, AttackTime: 0.005, ReleaseTime: 0.05}, cfg.GateParams)
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CutoffHz = -5
		c, err := New(&cfg)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("stage order", func(t *testing.T) {
		cfg := DefaultConfig()
		c, err := New(&cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, "dcblock -> gate", c.Name())

		filters := c.Filters()
		require.Len(t, filters, 2)
		assert.IsType(t, &DCBlocker{}, filters[0])
		assert.IsType(t, &NoiseGate{}, filters[1])
	})

	t.Run("single stage", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DCBlock = false
		c, err := New(&cfg)
		require.NoError(t, err)
		assert.Equal(t, "gate", c.Name())
	})
}

func TestNewChain(t *testing.T) {
	_, err := NewChain(NewDCBlocker(48000, 20), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	empty, err := NewChain()
	require.NoError(t, err)
	assert.Equal(t, "empty", empty.Name())

	// An empty chain copies src to dst.
	src := []float32{0.1, 0.2, 0.3, 0.4}
	dst := make([]float32, len(src))
	require.NoError(t, empty.Process(dst, src, 2))
	assert.Equal(t, src, dst)
}

func TestChain_MatchesSequentialOneShots(t *testing.T) {
	const frames = 9600
	cfg := DefaultConfig()

	mono := testsignal.Float32(testsignal.Add(
		testsignal.Sine(frames, 300, 0.3, 0.1, cfg.SampleRate),
		testsignal.Noise(frames, 0.01, 7),
	))
	src := DuplicateMonoToStereo(mono)

	want := make([]float32, len(src))
	DCCut(want, src, frames, cfg.SampleRate, cfg.CutoffHz)
	Gate(want, want, frames, cfg.SampleRate, cfg.GateParams)

	c, err := New(&cfg)
	require.NoError(t, err)
	got := make([]float32, len(src))
	require.NoError(t, c.Process(got, src, frames))

	assert.Equal(t, want, got)
}

func TestChain_BlockwiseEqualsWhole(t *testing.T) {
	const frames = 4800
	cfg := DefaultConfig()
	src := DuplicateMonoToStereo(testsignal.Float32(testsignal.Add(
		testsignal.Sine(frames, 440, 0.2, 0.05, cfg.SampleRate),
		testsignal.Step(frames, frames/2, 0, 0.1),
	)))

	whole, err := New(&cfg)
	require.NoError(t, err)
	want := make([]float32, len(src))
	require.NoError(t, whole.Process(want, src, frames))

	blocks, err := New(&cfg)
	require.NoError(t, err)
	got := make([]float32, len(src))
	for start := 0; start < frames; {
		n := min(frames-start, 1+start%517)
		lo, hi := start*2, (start+n)*2
		require.NoError(t, blocks.Process(got[lo:hi], src[lo:hi], n))
		start += n
	}

	assert.Equal(t, want, got)
}

func TestChain_ProcessBufferChecks(t *testing.T) {
	cfg := DefaultConfig()
	c, err := New(&cfg)
	require.NoError(t, err)

	src := make([]float32, 8)
	dst := make([]float32, 8)

	assert.NoError(t, c.Process(dst, src, 4))
	assert.NoError(t, c.Process(dst, src, 0))
	assert.ErrorIs(t, c.Process(dst, src, 5), ErrBufferTooSmall)
	assert.ErrorIs(t, c.Process(dst[:6], src, 4), ErrBufferTooSmall)
	assert.ErrorIs(t, c.Process(dst, src[:7], 4), ErrBufferTooSmall)
	assert.ErrorIs(t, c.Process(dst, src, -1), ErrBufferTooSmall)
}

func TestChain_Reset(t *testing.T) {
	const frames = 2400
	cfg := DefaultConfig()
	src := DuplicateMonoToStereo(testsignal.Float32(testsignal.Sine(frames, 1000, 0.5, 0.2, cfg.SampleRate)))

	c, err := New(&cfg)
	require.NoError(t, err)
	first := make([]float32, len(src))
	require.NoError(t, c.Process(first, src, frames))

	c.Reset()
	second := make([]float32, len(src))
	require.NoError(t, c.Process(second, src, frames))

	assert.Equal(t, first, second)
}

func TestCondition(t *testing.T) {
	cfg := DefaultConfig()
	src := DuplicateMonoToStereo(testsignal.Float32(testsignal.Sine(4800, 1000, 0.5, 0.2, cfg.SampleRate)))

	want := make([]float32, len(src))
	c, err := New(&cfg)
	require.NoError(t, err)
	require.NoError(t, c.Process(want, src, len(src)/2))

	got := make([]float32, len(src))
	require.NoError(t, Condition(got, src, &cfg))
	assert.Equal(t, want, got)

	bad := cfg
	bad.SampleRate = 0
	assert.ErrorIs(t, Condition(got, src, &bad), ErrInvalidConfig)
	assert.ErrorIs(t, Condition(got[:10], src, &cfg), ErrBufferTooSmall)
}

func TestCondition_OddLengthLeavesTrailingSample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gate = false

	src := []float32{0.5, 0.5, 0.5, 0.5, 0.9}
	dst := []float32{0, 0, 0, 0, -1}
	require.NoError(t, Condition(dst, src, &cfg))
	assert.InDelta(t, float32(-1), dst[4], 0)
	assert.InDelta(t, float32(0.5), dst[0], 1e-7)
}

func TestGetInfo(t *testing.T) {
	d := NewDCBlocker(48000, 20)
	info := GetInfo(d)
	assert.Equal(t, "dcblock", info.Name)
	assert.InDelta(t, 48000.0, info.SampleRate, 0)
	assert.InDelta(t, math.Exp(-2*math.Pi*20/48000), info.Coefficients["a"], 1e-15)
	assert.InDelta(t, 20.0, info.Coefficients["cutoff_hz"], 0)

	g := NewNoiseGate(48000, DefaultNoiseGateParams())
	info = GetInfo(g)
	assert.Equal(t, "gate", info.Name)
	assert.InDelta(t, math.Exp(-1/(48000*0.005)), info.Coefficients["a_attack"], 1e-15)
	assert.InDelta(t, math.Exp(-1/(48000*0.05)), info.Coefficients["a_release"], 1e-15)
	assert.InDelta(t, 0.05, info.Coefficients["th_open"], 0)
	assert.InDelta(t, 0.04, info.Coefficients["th_close"], 0)

	info = GetInfo(namedOnly{})
	assert.Equal(t, "custom", info.Name)
	assert.Nil(t, info.Coefficients)
}

func TestNewChain_CustomFilter(t *testing.T) {
	c, err := NewChain(NewDCBlocker(48000, 20), namedOnly{})
	require.NoError(t, err)
	assert.Equal(t, "dcblock -> custom", c.Name())

	src := []float32{1, 1, 1, 1}
	dst := make([]float32, 4)
	require.NoError(t, c.Process(dst, src, 2))
	testutil.AssertAllZero(t, dst)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidConfig, ErrBufferTooSmall))
}

// namedOnly silences its output and does not describe itself.
type namedOnly struct{}

func (namedOnly) Process(dst, _ []float32, frames int) {
	clear(dst[:2*frames])
}

func (namedOnly) Reset() {}

func (namedOnly) Name() string { return "custom" }
