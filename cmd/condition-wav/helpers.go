package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	conditioner "github.com/tphakala/go-audio-conditioner"
	"github.com/tphakala/go-audio-conditioner/internal/analysis"
	"github.com/tphakala/go-audio-conditioner/internal/simdops"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, log *logrus.Entry) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if err := checkInputFormat(format.NumChannels, bitDepth, int(decoder.WavAudioFormat)); err != nil {
		_ = inputFile.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithFields(logrus.Fields{
		"file":      path,
		"rate":      format.SampleRate,
		"channels":  format.NumChannels,
		"bit_depth": bitDepth,
	}).Debug("input format")

	// Total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: int64(duration.Seconds() * float64(format.SampleRate)),
		format:      format,
	}, nil
}

// checkInputFormat rejects layouts the stereo filters cannot take.
func checkInputFormat(channels, bitDepth, audioFormat int) error {
	if audioFormat != wavFormatPCM {
		return fmt.Errorf("unsupported WAV format %d: only integer PCM is supported", audioFormat)
	}
	if channels != monoChannels && channels != stereoChannels {
		return fmt.Errorf("unsupported channel count %d: only mono and stereo are supported", channels)
	}
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates the output file and a PCM encoder for it.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// conditionBuffers holds all preallocated buffers for one file.
type conditionBuffers struct {
	intBuffer *audio.IntBuffer
	mono      []float32 // mono input scratch
	stereo    []float32 // interleaved stereo working buffer
	outInts   []int
	invMaxVal float32
	maxVal    float64
}

// newConditionBuffers creates and preallocates all processing buffers.
func newConditionBuffers(channels, bitDepth int, format *audio.Format) *conditionBuffers {
	maxVal := getMaxValue(bitDepth)
	return &conditionBuffers{
		intBuffer: &audio.IntBuffer{
			Data:           make([]int, bufferFrames*channels),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		mono:      make([]float32, bufferFrames),
		stereo:    make([]float32, bufferFrames*stereoChannels),
		outInts:   make([]int, bufferFrames*channels),
		invMaxVal: float32(1.0 / maxVal),
		maxVal:    maxVal,
	}
}

// toStereo converts frames of interleaved PCM ints with the given channel
// count into normalized stereo floats. Mono is duplicated to both channels.
func toStereo(data []int, stereo, mono []float32, channels, frames int, invMaxVal float32) {
	ops := simdops.For[float32]()

	if channels == monoChannels {
		m := mono[:frames]
		for i := range m {
			m[i] = float32(data[i])
		}
		ops.Scale(m, m, invMaxVal)
		simdops.Duplicate(stereo, m)
		return
	}

	s := stereo[:frames*stereoChannels]
	for i := range s {
		s[i] = float32(data[i])
	}
	ops.Scale(s, s, invMaxVal)
}

// fromStereo converts frames of stereo floats back to PCM ints with the given
// channel count, clamping to full scale. Mono output takes the left channel.
func fromStereo(stereo []float32, dst []int, channels, frames int, maxVal float64) int {
	if channels == monoChannels {
		for i := range frames {
			dst[i] = toInt(stereo[i*stereoChannels], maxVal)
		}
		return frames
	}

	n := frames * stereoChannels
	for i := range n {
		dst[i] = toInt(stereo[i], maxVal)
	}
	return n
}

func toInt(sample float32, maxVal float64) int {
	s := float64(sample)
	if s > 1.0 {
		s = 1.0
	} else if s < -1.0 {
		s = -1.0
	}
	return int(s * maxVal)
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	log          *logrus.Entry
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, log *logrus.Entry) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		log:         log,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if p.totalFrames == 0 || !p.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		p.log.WithField("percent", progress).Debug("progress")
		p.lastProgress = progress
	}
}

// conditionJob names one input file and where its output goes.
type conditionJob struct {
	input  string
	output string
}

var (
	errOutputIsInput   = errors.New("output would overwrite input")
	errDuplicateOutput = errors.New("duplicate output path")
)

// checkJobs rejects a job list in which an output is also an input, or two
// jobs write the same output. It runs before any file is opened.
func checkJobs(jobs []conditionJob) error {
	inputs := make(map[string]string, len(jobs))
	for _, job := range jobs {
		in, err := filepath.Abs(job.input)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", job.input, err)
		}
		inputs[in] = job.input
	}

	outputs := make(map[string]string, len(jobs))
	for _, job := range jobs {
		out, err := filepath.Abs(job.output)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", job.output, err)
		}
		if in, ok := inputs[out]; ok {
			return fmt.Errorf("%w: %s", errOutputIsInput, in)
		}
		if sameFile(job.input, job.output) {
			return fmt.Errorf("%w: %s", errOutputIsInput, job.input)
		}
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("%w: %s from %s and %s", errDuplicateOutput, job.output, prev, job.input)
		}
		outputs[out] = job.input
	}
	return nil
}

// sameFile reports whether both paths exist and name the same file, which
// catches links that path comparison misses.
func sameFile(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}

// conditionStats describes one processed file.
type conditionStats struct {
	input      string
	output     string
	sampleRate int
	channels   int
	bitDepth   int
	frames     int64
	chain      string
	inReport   analysis.Report
	outReport  analysis.Report
}

// conditionWAV runs a fresh chain over one file. cfg.SampleRate is taken
// from the input.
func conditionWAV(job conditionJob, cfg conditioner.Config, report bool, log *logrus.Entry) (stats *conditionStats, err error) {
	log = log.WithField("file", job.input)

	// 1. Open and validate input
	input, err := openWAVInput(job.input, log)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Create the chain for this file's rate
	cfg.SampleRate = float64(input.rate)
	chain, err := conditioner.New(&cfg)
	if err != nil {
		return nil, err
	}

	// 3. Create output writer
	output, err := createWAVOutput(job.output, input.rate, input.bitDepth, input.channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (important for WAV header updates)
	defer func() {
		if closeErr := output.Close(); err == nil && closeErr != nil {
			stats, err = nil, fmt.Errorf("failed to finalize output file: %w", closeErr)
		}
	}()

	// 4. Initialize processing buffers and tracking
	buffers := newConditionBuffers(input.channels, input.bitDepth, input.format)
	stats = &conditionStats{
		input:      job.input,
		output:     job.output,
		sampleRate: input.rate,
		channels:   input.channels,
		bitDepth:   input.bitDepth,
		chain:      chain.Name(),
	}
	progress := newProgressTracker(input.totalFrames, log)

	// 5. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}

		frames := n / input.channels
		if frames == 0 {
			break
		}
		stats.frames += int64(frames)

		toStereo(buffers.intBuffer.Data, buffers.stereo, buffers.mono, input.channels, frames, buffers.invMaxVal)
		block := buffers.stereo[:frames*stereoChannels]
		if report {
			stats.inReport = stats.inReport.Merge(analysis.Analyze(block, stereoChannels))
		}

		if err := chain.Process(block, block, frames); err != nil {
			return nil, err
		}
		if report {
			stats.outReport = stats.outReport.Merge(analysis.Analyze(block, stereoChannels))
		}

		written := fromStereo(block, buffers.outInts, input.channels, frames, buffers.maxVal)
		if err := output.WriteSamples(buffers.outInts[:written]); err != nil {
			return nil, fmt.Errorf("failed to write audio data: %w", err)
		}

		progress.reportIfNeeded(stats.frames)
	}

	log.WithFields(logrus.Fields{
		"frames": stats.frames,
		"chain":  stats.chain,
	}).Debug("done")

	return stats, nil
}

// conditionFiles processes every job concurrently, one chain per file.
// The first error stops reporting; the remaining files still finish.
func conditionFiles(jobs []conditionJob, cfg conditioner.Config, report bool, log *logrus.Entry) ([]*conditionStats, error) {
	if len(jobs) == 1 {
		s, err := conditionWAV(jobs[0], cfg, report, log)
		if err != nil {
			return nil, err
		}
		return []*conditionStats{s}, nil
	}

	stats := make([]*conditionStats, len(jobs))
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := conditionWAV(job, cfg, report, log)
			if err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = fmt.Errorf("conditioning %s failed: %w", job.input, err)
				}
				errMu.Unlock()
				return
			}
			stats[i] = s
		}()
	}
	wg.Wait()

	if processErr != nil {
		return nil, processErr
	}

	return stats, nil
}
