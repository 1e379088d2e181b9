package loudness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniqlab/trackprint/audio"
)

func sine(freq, amplitude, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestFullScaleSineReference(t *testing.T) {
	// BS.1770: a 0 dBFS 1 kHz sine measures about -3.0 LUFS; allow the
	// whole [-6, 0] window so K-weighting detail doesn't pin the test.
	buf := audio.NewMono(sine(1000, 1.0, 5.0, 48000), 48000)
	r := NewMeter(48000).Measure(buf)

	assert.Greater(t, r.IntegratedLUFS, -6.0)
	assert.Less(t, r.IntegratedLUFS, 0.0)
}

func TestLoudnessMonotonicInGain(t *testing.T) {
	quiet := audio.NewMono(sine(1000, 0.25, 3.0, 48000), 48000)
	loud := audio.NewMono(sine(1000, 0.5, 3.0, 48000), 48000)

	m := NewMeter(48000)
	rq := m.Measure(quiet)
	rl := m.Measure(loud)

	assert.Greater(t, rl.IntegratedLUFS, rq.IntegratedLUFS)
	// Doubling amplitude is +6.02 dB of energy.
	assert.InDelta(t, 6.02, rl.IntegratedLUFS-rq.IntegratedLUFS, 0.2)
}

func TestStereoDoublingLaw(t *testing.T) {
	samples := sine(1000, 0.5, 3.0, 48000)
	mono := audio.NewMono(samples, 48000)
	stereoSamples2 := make([]float64, len(samples))
	copy(stereoSamples2, samples)
	stereo := audio.NewStereo(samples, stereoSamples2, 48000)

	m := NewMeter(48000)
	rm := m.Measure(mono)
	rs := m.Measure(stereo)

	assert.InDelta(t, 3.01, rs.IntegratedLUFS-rm.IntegratedLUFS, 1.0)
}

func TestShortInputReturnsSilenceFloor(t *testing.T) {
	// Shorter than one 400 ms block.
	buf := audio.NewMono(sine(1000, 1.0, 0.1, 48000), 48000)
	r := NewMeter(48000).Measure(buf)

	assert.Equal(t, SilenceLUFS, r.IntegratedLUFS)
	assert.Empty(t, r.ShortTerm)
}

func TestSilenceMeasuresFloor(t *testing.T) {
	buf := audio.NewMono(make([]float64, 48000*2), 48000)
	r := NewMeter(48000).Measure(buf)

	assert.Equal(t, SilenceLUFS, r.IntegratedLUFS)
	assert.False(t, math.IsNaN(r.TruePeakDb))
}

func TestTruePeakAtLeastSamplePeak(t *testing.T) {
	buf := audio.NewMono(sine(997, 0.5, 1.0, 48000), 48000)
	r := NewMeter(48000).Measure(buf)

	// -6.02 dBFS sample peak; the oversampled estimate can only be equal
	// or higher.
	assert.GreaterOrEqual(t, r.TruePeakDb, audio.LinearToDb(0.5)-0.05)
	assert.Less(t, r.TruePeakDb, -5.0)
}

func TestShortTermSeriesLength(t *testing.T) {
	// 10 s of audio, 3 s windows on a 1 s hop => 8 points.
	buf := audio.NewMono(sine(1000, 0.5, 10.0, 48000), 48000)
	r := NewMeter(48000).Measure(buf)
	require.Len(t, r.ShortTerm, 8)
}

func TestUnknownSampleRateFallsBack(t *testing.T) {
	// 32 kHz has no tabulated coefficients; the meter should still
	// produce a finite reading via the nearest known rate.
	buf := audio.NewMono(sine(1000, 0.5, 2.0, 32000), 32000)
	r := NewMeter(32000).Measure(buf)
	assert.False(t, math.IsNaN(r.IntegratedLUFS))
	assert.Greater(t, r.IntegratedLUFS, SilenceLUFS)
}
