package key

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniqlab/trackprint/audio"
)

func tones(freqs []float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		ts := float64(i) / float64(sampleRate)
		for _, f := range freqs {
			out[i] += 0.25 * math.Sin(2*math.Pi*f*ts)
		}
	}
	return out
}

func TestSilenceDefaultsToCMajor(t *testing.T) {
	buf := audio.NewMono(make([]float64, 48000*3), 48000)
	r := NewEstimator(48000).Estimate(buf)

	assert.Equal(t, "C", r.Root)
	assert.Equal(t, "major", r.Scale)
	assert.Equal(t, 0.0, r.Confidence)
}

func TestFSharpMinorTriad(t *testing.T) {
	// F#3, A3, C#4 across two octaves.
	freqs := []float64{185.0, 220.0, 277.18, 369.99, 440.0, 554.37}
	buf := audio.NewMono(tones(freqs, 6.0, 48000), 48000)
	r := NewEstimator(48000).Estimate(buf)

	assert.Equal(t, "F#", r.Root)
	assert.Equal(t, "minor", r.Scale)
	assert.Greater(t, r.Confidence, 0.0)
}

func TestCMajorScale(t *testing.T) {
	// C major scale tones weighted toward the tonic triad.
	freqs := []float64{261.63, 261.63, 329.63, 329.63, 392.0, 392.0, 293.66, 440.0, 493.88}
	buf := audio.NewMono(tones(freqs, 6.0, 48000), 48000)
	r := NewEstimator(48000).Estimate(buf)

	assert.Equal(t, "C", r.Root)
	assert.Equal(t, "major", r.Scale)
}

func TestConfidenceBounded(t *testing.T) {
	buf := audio.NewMono(tones([]float64{220, 277.18, 329.63}, 4.0, 48000), 48000)
	r := NewEstimator(48000).Estimate(buf)
	assert.GreaterOrEqual(t, r.Confidence, 0.0)
	assert.LessOrEqual(t, r.Confidence, 1.0)
}
