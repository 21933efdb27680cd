// Command condition-wav removes DC offset from and noise-gates WAV files.
//
// Usage:
//
//	condition-wav input.wav output.wav
//	condition-wav -no-gate -fc 10 input.wav output.wav      # DC removal only
//	condition-wav -open 0.02 -close 0.015 in.wav out.wav    # More sensitive gate
//	condition-wav -outdir clean/ a.wav b.wav c.wav          # Batch, files processed concurrently
//
// Mono files are processed as duplicated stereo and written back mono.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	conditioner "github.com/tphakala/go-audio-conditioner"
)

const (
	// Frames per processing chunk
	bufferFrames = 65536

	// Channel count constants
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Log progress every N%
	percentScale     = 100

	// WAV format constants
	wavFormatPCM = 1

	// CLI defaults
	minRequiredArgs = 2
	outDirPerm      = 0o755
)

var errUsage = errors.New("insufficient arguments")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatal(err)
	}
}

// options holds the parsed command line.
type options struct {
	config  conditioner.Config
	report  bool
	verbose bool
	outdir  string
	inputs  []string
	output  string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	defaults := conditioner.DefaultConfig()
	gp := defaults.GateParams

	fs := flag.NewFlagSet("condition-wav", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cutoff := fs.Float64("fc", defaults.CutoffHz, "DC blocker cutoff frequency in Hz")
	noDC := fs.Bool("no-dc", false, "Disable the DC blocker")
	noGate := fs.Bool("no-gate", false, "Disable the noise gate")
	thOpen := fs.Float64("open", gp.ThOpen, "Gate open threshold (linear amplitude, 0..1)")
	thClose := fs.Float64("close", gp.ThClose, "Gate close threshold (linear amplitude, 0..1)")
	attack := fs.Duration("attack", seconds(gp.AttackTime), "Gate attack time constant")
	release := fs.Duration("release", seconds(gp.ReleaseTime), "Gate release time constant")
	report := fs.Bool("report", false, "Print DC offset, RMS and peak per channel before and after")
	verbose := fs.Bool("v", false, "Verbose output")
	outdir := fs.String("outdir", "", "Write every input to this directory under its own name")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: condition-wav [options] input.wav output.wav\n")
		fmt.Fprintf(stderr, "       condition-wav -outdir DIR [options] input.wav...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts := &options{
		config: conditioner.Config{
			DCBlock:  !*noDC,
			CutoffHz: *cutoff,
			Gate:     !*noGate,
			GateParams: conditioner.NoiseGateParams{
				ThOpen:      *thOpen,
				ThClose:     *thClose,
				AttackTime:  attack.Seconds(),
				ReleaseTime: release.Seconds(),
			},
		},
		report:  *report,
		verbose: *verbose,
		outdir:  *outdir,
	}

	rest := fs.Args()
	switch {
	case opts.outdir != "" && len(rest) > 0:
		opts.inputs = rest
	case opts.outdir == "" && len(rest) == minRequiredArgs:
		opts.inputs = rest[:1]
		opts.output = rest[1]
	default:
		fs.Usage()
		return nil, errUsage
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	log := newLogger(stderr, opts.verbose)
	log.WithFields(logrus.Fields{
		"dc":       opts.config.DCBlock,
		"cutoff":   opts.config.CutoffHz,
		"gate":     opts.config.Gate,
		"th_open":  opts.config.GateParams.ThOpen,
		"th_close": opts.config.GateParams.ThClose,
		"attack":   opts.config.GateParams.AttackTime,
		"release":  opts.config.GateParams.ReleaseTime,
	}).Debug("configuration")

	jobs := make([]conditionJob, len(opts.inputs))
	for i, in := range opts.inputs {
		out := opts.output
		if opts.outdir != "" {
			out = filepath.Join(opts.outdir, filepath.Base(in))
		}
		jobs[i] = conditionJob{input: in, output: out}
	}
	if err := checkJobs(jobs); err != nil {
		return err
	}

	if opts.outdir != "" {
		if err := os.MkdirAll(opts.outdir, outDirPerm); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	start := time.Now()
	stats, err := conditionFiles(jobs, opts.config, opts.report, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, s := range stats {
		printSummary(stdout, s, opts.report)
	}
	var audioSeconds float64
	for _, s := range stats {
		audioSeconds += float64(s.frames) / float64(s.sampleRate)
	}
	fmt.Fprintf(stdout, "Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(), audioSeconds/elapsed.Seconds())

	return nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(logger).WithField("cmd", "condition-wav")
}

func printSummary(w io.Writer, s *conditionStats, report bool) {
	fmt.Fprintf(w, "Conditioned %s -> %s\n", filepath.Base(s.input), filepath.Base(s.output))
	fmt.Fprintf(w, "  %d Hz, %d channels, %d-bit, %d frames\n",
		s.sampleRate, s.channels, s.bitDepth, s.frames)
	fmt.Fprintf(w, "  Chain: %s\n", s.chain)

	if !report {
		return
	}
	for c := range s.inReport.Channels {
		in, out := s.inReport.Channels[c], s.outReport.Channels[c]
		fmt.Fprintf(w, "  ch%d  DC %+.6f -> %+.6f  RMS %.6f -> %.6f  std %.6f -> %.6f  peak %.6f -> %.6f\n",
			c, in.DCOffset, out.DCOffset, in.RMS, out.RMS, in.StdDev, out.StdDev, in.Peak, out.Peak)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
