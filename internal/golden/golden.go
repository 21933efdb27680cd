// Package golden implements the CSV golden-file harness: path resolution,
// one-float-per-line CSV I/O, mono-to-stereo conversion and RMSE comparison
// of filter output against reference values.
//
// Files live under <root>/testdata/<Module>/golden (inputs and references)
// and <root>/testdata/<Module>/output (outputs written for inspection).
package golden

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/tphakala/go-audio-conditioner/internal/analysis"
	"github.com/tphakala/go-audio-conditioner/internal/simdops"
)

// Harness parameters shared by every golden case.
const (
	SampleRate = 48000.0 // Hz
	Duration   = 1.0     // seconds
	DCCutoffHz = 20.0    // DC blocker cutoff

	// NumSamples is the length of every golden signal.
	NumSamples = int(SampleRate * Duration)

	// Tolerance is the largest accepted RMSE against a reference.
	Tolerance = 1e-6
)

// ErrSizeMismatch is returned when a loaded signal does not have the expected length.
var ErrSizeMismatch = errors.New("golden: size mismatch")

// ProjectRoot returns the repository root. CONDITIONER_ROOT overrides the
// location derived from this source file.
func ProjectRoot() string {
	if root := os.Getenv(rootEnvVar); root != "" {
		return root
	}
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	// internal/golden/golden.go -> repository root
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

// GoldenPath returns testdata/<module>/golden/<filename> under the project root.
func GoldenPath(module, filename string) string {
	return filepath.Join(ProjectRoot(), testdataDir, module, goldenDir, filename)
}

// OutputPath returns testdata/<module>/output/<filename> under the project root.
func OutputPath(module, filename string) string {
	return filepath.Join(ProjectRoot(), testdataDir, module, outputDir, filename)
}

// LoadCSV reads whitespace-separated float values from path.
func LoadCSV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var v []float32
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		x, err := strconv.ParseFloat(strings.TrimSuffix(scanner.Text(), ","), 32)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV %s value %d: %w", path, len(v), err)
		}
		v = append(v, float32(x))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}
	return v, nil
}

// LoadCSVN reads path and checks it holds exactly n values.
func LoadCSVN(path string, n int) ([]float32, error) {
	v, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(v) != n {
		return nil, fmt.Errorf("%w: %s has %d values, want %d", ErrSizeMismatch, path, len(v), n)
	}
	return v, nil
}

// WriteCSV writes one value per line with fixed 10-decimal precision,
// creating parent directories as needed.
func WriteCSV(path string, v []float32) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	buf := make([]byte, 0, floatBufSize)
	for _, x := range v {
		buf = strconv.AppendFloat(buf[:0], float64(x), 'f', csvPrecision, 32)
		buf = append(buf, '\n')
		if _, err := w.Write(buf); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write CSV %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write CSV %s: %w", path, err)
	}
	return f.Close()
}

// MonoToStereo duplicates a mono signal into an interleaved stereo buffer.
func MonoToStereo(mono []float32) []float32 {
	stereo := make([]float32, 2*len(mono))
	simdops.Duplicate(stereo, mono)
	return stereo
}

// LeftChannel extracts the left channel of an interleaved stereo buffer.
func LeftChannel(stereo []float32) []float32 {
	left := make([]float32, len(stereo)/2)
	for n := range left {
		left[n] = stereo[2*n]
	}
	return left
}

// RMSE returns the root-mean-square error between a and b, computed in float64.
func RMSE(a, b []float32) (float64, error) {
	return analysis.RMSE(widen(a), widen(b))
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
