// Package conditioner provides DC offset removal and noise gating for
// interleaved stereo float32 audio in pure Go.
//
// # Filters
//
//   - [DCBlocker]: one-pole high-pass y[n] = x[n] - x[n-1] + a·y[n-1] with
//     a = exp(-2π·fc/fs), run independently per channel.
//   - [NoiseGate]: per-channel hysteresis gate. A channel opens when
//     |x| >= ThOpen and closes when |x| <= ThClose; the applied gain follows a
//     one-pole attack (opening) or release (closing) smoother.
//
// Both keep their per-channel memory across Process calls, so a stream
// may be fed in blocks of any size and produces the same output as a
// single call over the concatenated input.
//
// # Quick Start
//
// One-shot processing with fresh filter state:
//
//	conditioner.DCCut(out, in, frames, 48000, 20)
//	conditioner.Gate(out, out, frames, 48000, conditioner.DefaultNoiseGateParams())
//
// Streaming with a validated chain:
//
//	cfg := conditioner.DefaultConfig()
//	c, err := conditioner.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for block := range blocks {
//	    if err := c.Process(block, block, len(block)/2); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Validation
//
// The filters never validate their parameters or buffer lengths; a cutoff
// outside (0, fs/2) or ThClose > ThOpen is accepted and behaves badly, and a
// buffer shorter than 2·frames panics. [Config.Validate], [New] and
// [Chain.Process] form the checked layer and return errors wrapping
// [ErrInvalidConfig] or [ErrBufferTooSmall].
//
// # Thread Safety
//
// Filters and chains are not safe for concurrent use. Use one instance per
// stream; separate instances share nothing.
package conditioner
