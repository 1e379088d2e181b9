package stereo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniqlab/trackprint/audio"
)

func TestMonoInput(t *testing.T) {
	buf := audio.NewMono(make([]float64, 48000), 48000)
	r := Analyze(buf)

	assert.False(t, r.IsStereo)
	assert.Equal(t, 1.0, r.Correlation)
	assert.Equal(t, 0.0, r.Width)
	assert.Equal(t, CompatibilityGood, r.Compatibility)
}

func TestIdenticalChannels(t *testing.T) {
	samples := make([]float64, 48000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 48000)
	}
	dup := make([]float64, len(samples))
	copy(dup, samples)

	r := Analyze(audio.NewStereo(samples, dup, 48000))
	assert.True(t, r.IsStereo)
	assert.InDelta(t, 1.0, r.Correlation, 1e-9)
	assert.InDelta(t, 0.0, r.Width, 0.05)
	assert.Equal(t, CompatibilityGood, r.Compatibility)
}

func TestDecorrelatedChannels(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	left := make([]float64, 48000)
	right := make([]float64, 48000)
	for i := range left {
		left[i] = rng.Float64()*2 - 1
		right[i] = rng.Float64()*2 - 1
	}

	r := Analyze(audio.NewStereo(left, right, 48000))
	assert.True(t, r.IsStereo)
	assert.InDelta(t, 0.0, r.Correlation, 0.1)
	assert.Greater(t, r.Width, 0.5)
}

func TestOutOfPhaseChannels(t *testing.T) {
	left := make([]float64, 48000)
	right := make([]float64, 48000)
	for i := range left {
		left[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 48000)
		right[i] = -left[i]
	}

	r := Analyze(audio.NewStereo(left, right, 48000))
	assert.InDelta(t, -1.0, r.Correlation, 1e-9)
	assert.Equal(t, CompatibilityPoor, r.Compatibility)
}

func TestSilentChannelsAreCorrelated(t *testing.T) {
	r := Analyze(audio.NewStereo(make([]float64, 48000), make([]float64, 48000), 48000))
	assert.Equal(t, 1.0, r.Correlation)
}
