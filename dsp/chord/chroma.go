// Package chord detects chords by matching Goertzel-extracted chroma
// vectors against quality templates rotated through all twelve roots.
package chord

import (
	"math"

	"github.com/soniqlab/trackprint/dsp/spectral"
)

// Chroma extraction range: pitch classes are summed across octaves 2-6
// (MIDI 36..95), covering bass through upper melody without the noisy
// extremes.
const (
	chromaLowOctave  = 2
	chromaHighOctave = 6
)

var rootNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ChromaVector computes a peak-normalized 12-bin pitch-class energy profile
// of a signal window using Goertzel resonators, one per pitch class per
// octave. Returns an all-zero vector for silence.
func ChromaVector(window []float64, sampleRate int) []float64 {
	chroma := make([]float64, 12)
	if len(window) == 0 || sampleRate <= 0 {
		return chroma
	}

	nyquist := float64(sampleRate) / 2.0
	for pc := 0; pc < 12; pc++ {
		for octave := chromaLowOctave; octave <= chromaHighOctave; octave++ {
			midi := 12*(octave+1) + pc
			freq := 440.0 * math.Pow(2.0, float64(midi-69)/12.0)
			if freq >= nyquist {
				continue
			}
			chroma[pc] += spectral.Goertzel(window, freq, sampleRate)
		}
	}

	peak := 0.0
	for _, v := range chroma {
		if v > peak {
			peak = v
		}
	}
	if peak > 0 {
		for i := range chroma {
			chroma[i] /= peak
		}
	}
	return chroma
}

// cosineSimilarity scores how well a chroma vector matches a template.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	dot, normA, normB := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rotatePattern shifts a 12-bin template up by the given number of
// semitones, wrapping around the octave.
func rotatePattern(pattern []float64, semitones int) []float64 {
	rotated := make([]float64, len(pattern))
	for i, v := range pattern {
		rotated[(i+semitones)%len(pattern)] = v
	}
	return rotated
}
