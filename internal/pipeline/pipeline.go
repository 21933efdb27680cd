// Package pipeline implements an ordered chain of stereo filter stages.
// The first stage reads the caller's input buffer and writes the output
// buffer; every later stage runs in place on the output buffer.
package pipeline

import "errors"

// Stage represents a single processing stage in the pipeline.
type Stage interface {
	// Process filters frames interleaved stereo frames from src into dst.
	// dst may alias src.
	Process(dst, src []float32, frames int)

	// Reset clears internal state.
	Reset()

	// Name identifies the stage in diagnostics.
	Name() string
}

// ErrNilStage is returned when a nil stage is added to a pipeline.
var ErrNilStage = errors.New("pipeline: nil stage")

// Pipeline represents an ordered chain of stages.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline running stages in order.
func New(stages ...Stage) (*Pipeline, error) {
	p := &Pipeline{stages: make([]Stage, 0, len(stages))}
	for _, s := range stages {
		if err := p.Add(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add appends a stage to the end of the pipeline.
func (p *Pipeline) Add(s Stage) error {
	if s == nil {
		return ErrNilStage
	}
	p.stages = append(p.stages, s)
	return nil
}

// Process runs every stage over frames stereo frames. With no stages, src is
// copied to dst.
func (p *Pipeline) Process(dst, src []float32, frames int) {
	if len(p.stages) == 0 {
		copy(dst[:frames*stereoChannels], src[:frames*stereoChannels])
		return
	}

	p.stages[0].Process(dst, src, frames)
	for _, s := range p.stages[1:] {
		s.Process(dst, dst, frames)
	}
}

// Reset clears the state of every stage.
func (p *Pipeline) Reset() {
	for _, s := range p.stages {
		s.Reset()
	}
}

// Stages returns the stages in processing order.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in processing order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
