// Command golden-gen writes the harness fixtures: one input CSV and one
// float64 reference output CSV per case, under testdata/<Module>/golden.
//
// Usage:
//
//	golden-gen                     # all cases
//	golden-gen -module NoiseGate   # gate cases only
//
// Set CONDITIONER_ROOT to write into a tree other than this repository.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	conditioner "github.com/tphakala/go-audio-conditioner"
	"github.com/tphakala/go-audio-conditioner/internal/golden"
	"github.com/tphakala/go-audio-conditioner/internal/testsignal"
)

const moduleAll = "all"

var errUnknownModule = errors.New("unknown module")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("golden-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	module := fs.String("module", moduleAll, "Cases to write: DcCut, NoiseGate or all")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger).WithField("cmd", "golden-gen")

	cases, err := selectCases(*module)
	if err != nil {
		return err
	}

	for _, c := range cases {
		if err := writeCase(c, log); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Wrote %d cases under %s\n", len(cases), golden.ProjectRoot())
	return nil
}

func selectCases(module string) ([]testsignal.Case, error) {
	switch module {
	case testsignal.ModuleDCCut:
		return testsignal.DCCases, nil
	case testsignal.ModuleNoiseGate:
		return testsignal.GateCases, nil
	case moduleAll:
		return append(append([]testsignal.Case(nil), testsignal.DCCases...), testsignal.GateCases...), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownModule, module)
	}
}

func writeCase(c testsignal.Case, log *logrus.Entry) error {
	input := c.Generate(golden.NumSamples, golden.SampleRate)
	ref := reference(c.Module, input)

	inPath := golden.GoldenPath(c.Module, c.InputFile())
	if err := golden.WriteCSV(inPath, input); err != nil {
		return err
	}
	refPath := golden.GoldenPath(c.Module, c.GoldenFile())
	if err := golden.WriteCSV(refPath, ref); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"case":      c.Name,
		"input":     inPath,
		"reference": refPath,
	}).Debug("wrote case")
	return nil
}

// reference computes the float64 reference output of module for input.
func reference(module string, input []float32) []float32 {
	if module == testsignal.ModuleDCCut {
		return golden.ReferenceDCCut(input, golden.SampleRate, golden.DCCutoffHz)
	}
	p := conditioner.DefaultNoiseGateParams()
	return golden.ReferenceGate(input, golden.SampleRate, golden.GateParams{
		ThOpen:      p.ThOpen,
		ThClose:     p.ThClose,
		AttackTime:  p.AttackTime,
		ReleaseTime: p.ReleaseTime,
	})
}
