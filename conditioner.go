package conditioner

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-audio-conditioner/internal/pipeline"
)

// Filter is a stateful stream filter over interleaved stereo float32 frames.
// Both [DCBlocker] and [NoiseGate] implement it, so they compose into a [Chain].
type Filter interface {
	// Process filters frames stereo frames ([L0, R0, L1, R1, ...]) from src
	// into dst. dst may alias src. Both slices must hold at least 2*frames
	// samples; the filters do not check.
	Process(dst, src []float32, frames int)

	// Reset clears the filter memory while keeping its configuration.
	Reset()

	// Name identifies the filter in diagnostics.
	Name() string
}

// Config holds the configuration of a conditioning chain.
type Config struct {
	// SampleRate is the sample rate of the audio in Hz.
	SampleRate float64

	// DCBlock enables the DC blocker stage.
	DCBlock bool

	// CutoffHz is the DC blocker -3 dB corner frequency in Hz.
	// Must be in (0, SampleRate/2).
	CutoffHz float64

	// Gate enables the noise gate stage, which runs after the DC blocker.
	Gate bool

	// GateParams configures the noise gate.
	GateParams NoiseGateParams
}

// Common errors returned by the checked API.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid conditioner configuration")

	// ErrBufferTooSmall indicates a buffer holds fewer than 2*frames samples.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// DefaultConfig returns a chain configuration with both stages enabled:
// 48 kHz, 20 Hz DC cutoff and [DefaultNoiseGateParams].
func DefaultConfig() Config {
	return Config{
		SampleRate: RateDAT,
		DCBlock:    true,
		CutoffHz:   defaultCutoffHz,
		Gate:       true,
		GateParams: DefaultNoiseGateParams(),
	}
}

// Validate checks if the configuration is valid.
//
// The filters themselves never validate; Validate is the calling-code check
// that rejects settings which would make them unstable or chatter.
func (c *Config) Validate() error {
	if !isFinite(c.SampleRate) || c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidConfig, c.SampleRate)
	}

	if !c.DCBlock && !c.Gate {
		return fmt.Errorf("%w: no stage enabled", ErrInvalidConfig)
	}

	if c.DCBlock {
		if !isFinite(c.CutoffHz) || c.CutoffHz <= 0 || c.CutoffHz >= c.SampleRate/nyquistDivisor {
			return fmt.Errorf("%w: cutoff must be in (0, %v) Hz: %v",
				ErrInvalidConfig, c.SampleRate/nyquistDivisor, c.CutoffHz)
		}
	}

	if c.Gate {
		if err := c.GateParams.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks that the thresholds form a hysteresis band and that the
// time constants are non-negative.
func (p *NoiseGateParams) Validate() error {
	if !isFinite(p.ThOpen) || !isFinite(p.ThClose) || p.ThClose < 0 {
		return fmt.Errorf("%w: thresholds must be finite and non-negative", ErrInvalidConfig)
	}

	if p.ThOpen < p.ThClose {
		return fmt.Errorf("%w: open threshold %v below close threshold %v",
			ErrInvalidConfig, p.ThOpen, p.ThClose)
	}

	if !isFinite(p.AttackTime) || !isFinite(p.ReleaseTime) || p.AttackTime < 0 || p.ReleaseTime < 0 {
		return fmt.Errorf("%w: attack and release times must be finite and non-negative", ErrInvalidConfig)
	}

	return nil
}

// Chain runs a fixed sequence of filters over stereo buffers.
// A Chain is not safe for concurrent use.
type Chain struct {
	p          *pipeline.Pipeline
	sampleRate float64
}

// New validates config and creates a chain of the enabled stages, DC blocker
// first.
func New(config *Config) (*Chain, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	var filters []Filter
	if config.DCBlock {
		filters = append(filters, NewDCBlocker(config.SampleRate, config.CutoffHz))
	}
	if config.Gate {
		filters = append(filters, NewNoiseGate(config.SampleRate, config.GateParams))
	}

	c, err := NewChain(filters...)
	if err != nil {
		return nil, err
	}
	c.sampleRate = config.SampleRate
	return c, nil
}

// NewChain creates a chain running filters in the given order.
func NewChain(filters ...Filter) (*Chain, error) {
	stages := make([]pipeline.Stage, 0, len(filters))
	for _, f := range filters {
		if f == nil {
			return nil, fmt.Errorf("%w: nil filter", ErrInvalidConfig)
		}
		stages = append(stages, f)
	}

	p, err := pipeline.New(stages...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Chain{p: p}, nil
}

// Process runs every filter over frames stereo frames of src, writing dst.
// It returns ErrBufferTooSmall if either buffer holds fewer than 2*frames
// samples, and leaves dst untouched in that case.
func (c *Chain) Process(dst, src []float32, frames int) error {
	need := frames * stereoChannels
	if frames < 0 || len(src) < need || len(dst) < need {
		return fmt.Errorf("%w: need %d samples, src has %d, dst has %d",
			ErrBufferTooSmall, need, len(src), len(dst))
	}

	c.p.Process(dst, src, frames)
	return nil
}

// Reset clears the state of every filter.
func (c *Chain) Reset() {
	c.p.Reset()
}

// Filters returns the filters in processing order.
func (c *Chain) Filters() []Filter {
	stages := c.p.Stages()
	filters := make([]Filter, len(stages))
	for i, s := range stages {
		// Every stage was added through NewChain as a Filter.
		filters[i] = s.(Filter)
	}
	return filters
}

// Len returns the number of filters.
func (c *Chain) Len() int {
	return c.p.Len()
}

// Name describes the chain as its filter names joined by " -> ".
func (c *Chain) Name() string {
	names := c.p.Names()
	if len(names) == 0 {
		return "empty"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += chainSeparator + n
	}
	return out
}

// Info describes a filter for diagnostics.
type Info struct {
	// Name is the filter name.
	Name string

	// SampleRate is the configured sample rate in Hz (0 if unknown).
	SampleRate float64

	// Coefficients holds the derived filter coefficients by name.
	Coefficients map[string]float64
}

// infoProvider is an optional interface for filters that can describe themselves.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a filter.
// Filters that do not describe themselves report only their name.
func GetInfo(f Filter) Info {
	if provider, ok := f.(infoProvider); ok {
		return provider.GetInfo()
	}
	return Info{Name: f.Name()}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Ensure implementations satisfy the interface
var (
	_ Filter         = (*DCBlocker)(nil)
	_ Filter         = (*NoiseGate)(nil)
	_ pipeline.Stage = Filter(nil)
)
