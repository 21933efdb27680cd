// Package testutil provides reusable test helper functions for conditioner tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-conditioner/internal/golden"
	"github.com/tphakala/go-audio-conditioner/internal/simdops"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	Float32Tolerance = 1e-6
	AmplitudeRelTol  = 0.01
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange[F simdops.Float](t *testing.T, s []F, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if float64(v) < minVal || float64(v) > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, float64(v), minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero[F simdops.Float](t *testing.T, s []F) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero value", "s[%d]=%g", i, float64(v))
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertRMSEBelow verifies that two equal-length float32 signals differ by an
// RMSE below tolerance.
func AssertRMSEBelow(t *testing.T, expected, actual []float32, tolerance float64) bool {
	t.Helper()
	rmse, err := golden.RMSE(expected, actual)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Less(t, rmse, tolerance, "RMSE %e not below %e", rmse, tolerance)
}

// AssertSlicesInDelta verifies element-wise closeness of two slices.
func AssertSlicesInDelta[F simdops.Float](t *testing.T, expected, actual []F, delta float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if math.Abs(float64(expected[i])-float64(actual[i])) > delta {
			return assert.Fail(t, "slices differ",
				"index %d: expected %g, got %g (delta %g)", i, float64(expected[i]), float64(actual[i]), delta)
		}
	}
	return true
}
