package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniqlab/trackprint/audio"
)

const testRate = 48000

// kickTrack renders decaying kicks at the given fundamental with optional
// harmonic overtones at 2-5x.
func kickTrack(fundamental float64, harmonics []float64, bpm, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	interval := 60.0 / bpm
	for beat := 0.05; beat < seconds-0.2; beat += interval {
		start := int(beat * float64(sampleRate))
		length := int(0.15 * float64(sampleRate))
		for i := 0; i < length && start+i < len(out); i++ {
			ts := float64(i) / float64(sampleRate)
			env := math.Exp(-ts * 18)
			s := math.Sin(2 * math.Pi * fundamental * ts)
			for h, amp := range harmonics {
				s += amp * math.Sin(2*math.Pi*fundamental*float64(h+2)*ts)
			}
			out[start+i] += env * s
		}
	}
	return out
}

// sweptBass renders a rhythmically gated bass whose frequency sweeps
// between lo and hi at the given rate, mimicking a resonant filter line.
func sweptBass(lo, hi, sweepHz, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	phase := 0.0
	for i := range out {
		ts := float64(i) / float64(sampleRate)
		freq := lo + (hi-lo)*0.5*(1+math.Sin(2*math.Pi*sweepHz*ts))
		phase += 2 * math.Pi * freq / float64(sampleRate)
		gate := 0.0
		if math.Mod(ts, 0.25) < 0.15 {
			gate = 1.0
		}
		out[i] = gate * 0.8 * math.Sin(phase)
	}
	return out
}

func steadyBass(freq, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	for i := range out {
		ts := float64(i) / float64(sampleRate)
		gate := 0.0
		if math.Mod(ts, 0.25) < 0.15 {
			gate = 1.0
		}
		out[i] = gate * 0.8 * math.Sin(2*math.Pi*freq*ts)
	}
	return out
}

func TestAcidSafeDefaults(t *testing.T) {
	short := audio.NewMono(make([]float64, testRate/10), testRate)
	silent := audio.NewMono(make([]float64, testRate*4), testRate)

	d := NewAcidDetector(testRate)
	for name, buf := range map[string]*audio.Buffer{"short": short, "silent": silent} {
		r := d.Detect(buf, 120)
		assert.False(t, r.IsAcid, name)
		assert.Equal(t, 0.0, r.Confidence, name)
		assert.Equal(t, 0.0, r.CentroidOscillationHz, name)
	}
}

func TestAcidDiscrimination(t *testing.T) {
	swept := audio.NewMono(sweptBass(60, 350, 2.0, 8.0, testRate), testRate)
	steady := audio.NewMono(steadyBass(80, 8.0, testRate), testRate)

	d := NewAcidDetector(testRate)
	rs := d.Detect(swept, 120)
	rt := d.Detect(steady, 120)

	assert.Greater(t, rs.CentroidOscillationHz, rt.CentroidOscillationHz)
	assert.Greater(t, rs.Confidence, rt.Confidence)
	assert.Greater(t, rs.ResonanceLevel, rt.ResonanceLevel)
}

func TestKickDistortionSafeDefaults(t *testing.T) {
	d := NewKickDistortionDetector(testRate)
	r := d.Detect(audio.NewMono(make([]float64, testRate*2), testRate), 120)

	assert.False(t, r.IsDistorted)
	assert.Equal(t, 0.0, r.THDRatio)
	assert.Equal(t, 0, r.KickCount)
}

func TestKickDistortionDiscrimination(t *testing.T) {
	clean := audio.NewMono(kickTrack(55, nil, 128, 6.0, testRate), testRate)
	distorted := audio.NewMono(kickTrack(55, []float64{0.5, 0.4, 0.3, 0.2}, 128, 6.0, testRate), testRate)

	d := NewKickDistortionDetector(testRate)
	rc := d.Detect(clean, 128)
	rd := d.Detect(distorted, 128)

	require.Greater(t, rc.KickCount, 0)
	require.Greater(t, rd.KickCount, 0)

	assert.Greater(t, rd.THDRatio, rc.THDRatio)
	assert.True(t, rd.IsDistorted)
	assert.False(t, rc.IsDistorted)
	assert.InDelta(t, 55.0, rd.Fundamental, 10.0)
}

func TestBassDecaySafeDefault(t *testing.T) {
	// A continuous tone produces almost no bass onsets; fewer than 3
	// classifies as sustained.
	out := make([]float64, testRate*4)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*50*float64(i)/float64(testRate))
	}
	r := NewBassDecayDetector(testRate).Detect(audio.NewMono(out, testRate), 120)
	assert.Equal(t, DecaySustained, r.Class)
}

func TestBassDecayPunchyKicks(t *testing.T) {
	// Fast-decaying 50 Hz hits reach -6 dB well inside 300 ms.
	buf := audio.NewMono(kickTrack(50, nil, 128, 6.0, testRate), testRate)
	r := NewBassDecayDetector(testRate).Detect(buf, 128)

	require.GreaterOrEqual(t, r.OnsetCount, 3)
	assert.Equal(t, DecayPunchy, r.Class)
	assert.Less(t, r.AverageDecayMs, 300.0)
	assert.Greater(t, r.TransientRatio, 0.0)
}

func TestBassDecayClassBoundaries(t *testing.T) {
	assert.Equal(t, DecayPunchy, classifyDecay(200))
	assert.Equal(t, DecayMedium, classifyDecay(450))
	assert.Equal(t, DecayRolling, classifyDecay(800))
	assert.Equal(t, DecaySustained, classifyDecay(1200))
}

func TestOnePoleFilters(t *testing.T) {
	// Lowpass at 100 Hz passes 50 Hz and strongly attenuates 2 kHz.
	n := testRate
	low := make([]float64, n)
	high := make([]float64, n)
	for i := range low {
		ts := float64(i) / float64(testRate)
		low[i] = math.Sin(2 * math.Pi * 50 * ts)
		high[i] = math.Sin(2 * math.Pi * 2000 * ts)
	}

	lowOut := onePoleLowpass(low, 100, testRate)
	highOut := onePoleLowpass(high, 100, testRate)
	assert.Greater(t, audio.RMS(lowOut), audio.RMS(highOut)*5)

	hpLow := onePoleHighpass(low, 1000, testRate)
	hpHigh := onePoleHighpass(high, 1000, testRate)
	assert.Greater(t, audio.RMS(hpHigh), audio.RMS(hpLow)*5)
}
