package engine

import "math"

// Channels is the number of interleaved channels every filter instance handles.
const Channels = 2

// Coefficient derivation constants
const (
	// twoPi is 2π, used for the one-pole cutoff-to-pole mapping.
	twoPi = 2 * math.Pi

	// instantCoefficient is the smoothing coefficient for a time constant <= 0.
	// A zero coefficient makes the gain jump straight to its target.
	instantCoefficient = 0.0
)

// Gate target gains
const (
	gainOpen   = 1.0
	gainClosed = 0.0
)
