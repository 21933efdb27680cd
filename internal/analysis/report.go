package analysis

import (
	"math"

	"github.com/tphakala/go-audio-conditioner/internal/simdops"
)

// ChannelStats summarizes one channel.
type ChannelStats struct {
	DCOffset float64 // Mean sample value
	RMS      float64 // Root-mean-square level
	Peak     float64 // Largest absolute sample
	StdDev   float64 // Sample standard deviation, the level with DC removed
}

// Report summarizes every channel of an interleaved buffer.
type Report struct {
	Frames   int
	Channels []ChannelStats
}

// Analyze measures each channel of an interleaved buffer.
func Analyze[F simdops.Float](buf []F, channels int) Report {
	r := Report{
		Frames:   len(buf) / channels,
		Channels: make([]ChannelStats, channels),
	}
	for c := range channels {
		x := Channel(buf, c, channels)
		r.Channels[c] = ChannelStats{
			DCOffset: Mean(x),
			RMS:      RMS(x),
			Peak:     Peak(x),
			StdDev:   StdDev(x),
		}
	}
	return r
}

// Merge combines r with a report on the frames that follow it, as if both
// had been measured in one pass. An empty r adopts next.
func (r Report) Merge(next Report) Report {
	if r.Frames == 0 {
		return next
	}
	if next.Frames == 0 {
		return r
	}

	total := r.Frames + next.Frames
	na, nb := float64(r.Frames), float64(next.Frames)
	wa, wb := na/float64(total), nb/float64(total)

	merged := Report{Frames: total, Channels: make([]ChannelStats, len(r.Channels))}
	for c := range r.Channels {
		a, b := r.Channels[c], next.Channels[c]
		merged.Channels[c] = ChannelStats{
			DCOffset: wa*a.DCOffset + wb*b.DCOffset,
			RMS:      math.Sqrt(wa*a.RMS*a.RMS + wb*b.RMS*b.RMS),
			Peak:     max(a.Peak, b.Peak),
			StdDev:   pooledStdDev(a, b, na, nb),
		}
	}
	return merged
}

// pooledStdDev combines two sample standard deviations through their sums of
// squared deviations.
func pooledStdDev(a, b ChannelStats, na, nb float64) float64 {
	n := na + nb
	if n < minStdDevSamples {
		return 0
	}
	delta := b.DCOffset - a.DCOffset
	m2 := a.StdDev*a.StdDev*max(na-1, 0) + b.StdDev*b.StdDev*max(nb-1, 0) + delta*delta*na*nb/n
	return math.Sqrt(m2 / (n - 1))
}
