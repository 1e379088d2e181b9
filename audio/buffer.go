// Package audio defines the decoded-audio input contract shared by every
// analysis component. A Buffer is owned by the caller; analyzers borrow it
// read-only, so one decoded buffer can feed any number of concurrent
// analyses.
package audio

import "math"

// Buffer holds decoded PCM audio: one or more channels of float64 samples,
// nominally in [-1, 1], at a fixed sample rate.
type Buffer struct {
	Channels   [][]float64 `json:"-"`
	SampleRate int         `json:"sample_rate"`
}

// NewMono wraps a single channel of samples in a Buffer.
func NewMono(samples []float64, sampleRate int) *Buffer {
	return &Buffer{
		Channels:   [][]float64{samples},
		SampleRate: sampleRate,
	}
}

// NewStereo wraps left and right channels in a Buffer.
func NewStereo(left, right []float64, sampleRate int) *Buffer {
	return &Buffer{
		Channels:   [][]float64{left, right},
		SampleRate: sampleRate,
	}
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// NumSamples returns the per-channel sample count (the shortest channel wins
// for ragged input).
func (b *Buffer) NumSamples() int {
	if len(b.Channels) == 0 {
		return 0
	}
	n := len(b.Channels[0])
	for _, ch := range b.Channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	return n
}

// Duration returns the buffer duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.NumSamples()) / float64(b.SampleRate)
}

// Mono returns a single-channel mixdown (channel average). For mono input
// the original channel slice is returned without copying.
func (b *Buffer) Mono() []float64 {
	if len(b.Channels) == 0 {
		return []float64{}
	}
	if len(b.Channels) == 1 {
		return b.Channels[0]
	}

	n := b.NumSamples()
	mono := make([]float64, n)
	scale := 1.0 / float64(len(b.Channels))
	for _, ch := range b.Channels {
		for i := 0; i < n; i++ {
			mono[i] += ch[i] * scale
		}
	}
	return mono
}

// RMS computes the root-mean-square level of a sample slice.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Peak returns the absolute sample peak of a slice.
func Peak(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// LinearToDb converts a linear amplitude to decibels with a -100 dB floor.
func LinearToDb(amplitude float64) float64 {
	if amplitude <= 1e-5 {
		return -100.0
	}
	return 20.0 * math.Log10(amplitude)
}
