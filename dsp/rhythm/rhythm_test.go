package rhythm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clickTrack renders decaying 200 Hz bursts at the given beat times.
func clickTrack(beats []float64, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	for _, beat := range beats {
		start := int(beat * float64(sampleRate))
		for i := 0; i < sampleRate/50 && start+i < len(out); i++ {
			ts := float64(i) / float64(sampleRate)
			out[start+i] += math.Exp(-ts*80) * math.Sin(2*math.Pi*200*ts)
		}
	}
	return out
}

func beatsAt(bpm float64, seconds float64) []float64 {
	interval := 60.0 / bpm
	var beats []float64
	for ts := 0.1; ts < seconds-0.1; ts += interval {
		beats = append(beats, ts)
	}
	return beats
}

func TestDetectOnsetsFindsClicks(t *testing.T) {
	beats := beatsAt(128, 8.0)
	signal := clickTrack(beats, 8.0, 48000)

	onsets := DetectOnsets(signal, 48000, OnsetParams{})
	require.NotEmpty(t, onsets)
	// Every click should register once: allow one miss at the edges.
	assert.InDelta(t, len(beats), len(onsets), 2)
}

func TestDetectOnsetsSilence(t *testing.T) {
	assert.Empty(t, DetectOnsets(make([]float64, 48000), 48000, OnsetParams{}))
}

func TestEstimateBPM128(t *testing.T) {
	beats := beatsAt(128, 10.0)
	signal := clickTrack(beats, 10.0, 48000)

	onsets := DetectOnsets(signal, 48000, OnsetParams{})
	est := EstimateBPM(onsets, 0)

	assert.InDelta(t, 128.0, est.BPM, 2.0)
	assert.Greater(t, est.Confidence, 0.5)
}

func TestEstimateBPMFallsBackToHint(t *testing.T) {
	est := EstimateBPM([]float64{0.5, 1.0}, 140)
	assert.Equal(t, 140.0, est.BPM)
	assert.Equal(t, 0.0, est.Confidence)

	est = EstimateBPM(nil, 0)
	assert.Equal(t, DefaultBPM, est.BPM)
}

func TestFoldBPM(t *testing.T) {
	assert.InDelta(t, 128.0, FoldBPM(256), 1e-9)
	assert.InDelta(t, 128.0, FoldBPM(64), 1e-9)
	assert.InDelta(t, 128.0, FoldBPM(128), 1e-9)
	assert.InDelta(t, 90.0, FoldBPM(45), 1e-9)
}

func TestOnsetDensity(t *testing.T) {
	assert.InDelta(t, 2.0, OnsetDensity([]float64{0, 1, 2, 3}, 2.0), 1e-9)
	assert.Equal(t, 0.0, OnsetDensity(nil, 2.0))
	assert.Equal(t, 0.0, OnsetDensity([]float64{1}, 0))
}

func TestSwingStraightGrid(t *testing.T) {
	beats := beatsAt(120, 10.0)
	r := AnalyzeSwing(beats)

	assert.Equal(t, GrooveStraight, r.Class)
	assert.Less(t, r.SwingPercent, 3.0)
}

func TestSwingAlternatingIntervals(t *testing.T) {
	// Heavy swing: long-short pairs of 0.32 s / 0.18 s.
	var beats []float64
	ts := 0.0
	for i := 0; i < 16; i++ {
		beats = append(beats, ts)
		if i%2 == 0 {
			ts += 0.32
		} else {
			ts += 0.18
		}
	}
	r := AnalyzeSwing(beats)

	assert.Greater(t, r.SwingPercent, 10.0)
	assert.NotEqual(t, GrooveStraight, r.Class)
	assert.Less(t, r.Lag1Correlation, 0.0)
}

func TestSwingTooFewBeats(t *testing.T) {
	r := AnalyzeSwing([]float64{0, 0.5, 1.0, 1.5})
	assert.Equal(t, GrooveStraight, r.Class)
	assert.Equal(t, 0.0, r.SwingPercent)
}
