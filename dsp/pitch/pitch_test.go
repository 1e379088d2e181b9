package pitch

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

func TestMidiConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 440.0, MidiToFrequency(69), 1e-9)
	assert.Equal(t, 69, FrequencyToMidi(440.0))
	assert.Equal(t, 69, FrequencyToMidi(445.0)) // nearest note
	assert.Equal(t, "A4", MidiNoteName(69))
	assert.Equal(t, "C4", MidiNoteName(60))
}

func TestClampVelocity(t *testing.T) {
	assert.Equal(t, 1, ClampVelocity(0))
	assert.Equal(t, 1, ClampVelocity(-5))
	assert.Equal(t, 127, ClampVelocity(300))
	assert.Equal(t, 64, ClampVelocity(64))
}

func TestYinSilenceYieldsEmptyResult(t *testing.T) {
	buf := audio.NewMono(make([]float64, 48000), 48000)
	r := NewYinTracker(48000).Detect(buf, 120)

	assert.Empty(t, r.Notes)
	assert.Equal(t, 0.0, r.Confidence)
}

func TestYinStableTone(t *testing.T) {
	buf := audio.NewMono(sine(440, 0.8, 2.0, 48000), 48000)
	r := NewYinTracker(48000).Detect(buf, 120)

	require.NotEmpty(t, r.Notes)
	assert.Greater(t, r.Confidence, 0.0)

	// Every detected note of a 440 Hz tone is A4.
	for _, n := range r.Notes {
		assert.Equal(t, 69, n.Midi, "expected A4, got %s", n.Name)
	}

	// Notes are sorted, non-overlapping, and never exceed the buffer.
	total := 0.0
	for i, n := range r.Notes {
		total += n.Duration
		if i > 0 {
			prev := r.Notes[i-1]
			assert.GreaterOrEqual(t, n.Start, prev.Start)
			assert.GreaterOrEqual(t, n.Start, prev.Start+prev.Duration-1e-6)
		}
		assert.GreaterOrEqual(t, n.Velocity, 1)
		assert.LessOrEqual(t, n.Velocity, 127)
	}
	assert.LessOrEqual(t, total, buf.Duration()+0.1)
}

func TestYinTracksOctave(t *testing.T) {
	low := audio.NewMono(sine(110, 0.8, 1.0, 48000), 48000)
	r := NewYinTracker(48000).Detect(low, 120)
	require.NotEmpty(t, r.Notes)
	assert.Equal(t, 45, r.Notes[0].Midi, "expected A2")
}

func TestNotesFromActivationsBasic(t *testing.T) {
	// One note held for 4 frames starting at frame 2, MIDI 60 is index
	// 39 from the model's base note 21.
	frames := make([][]float32, 10)
	for i := range frames {
		frames[i] = make([]float32, 88)
	}
	for f := 2; f < 6; f++ {
		frames[f][39] = 0.8
	}

	r := NotesFromActivations(frames, 10.0, 0.3)
	require.Len(t, r.Notes, 1)

	n := r.Notes[0]
	assert.Equal(t, 60, n.Midi)
	assert.InDelta(t, 0.2, n.Start, 1e-9)
	assert.InDelta(t, 0.4, n.Duration, 1e-9)
	assert.Equal(t, 102, n.Velocity) // round(0.8*127)
	assert.InDelta(t, 0.8, r.Confidence, 1e-6)
}

func TestNotesFromActivationsSortedAndClamped(t *testing.T) {
	frames := make([][]float32, 12)
	for i := range frames {
		frames[i] = make([]float32, 88)
	}
	// A late low note and an early saturated high note.
	for f := 6; f < 9; f++ {
		frames[f][10] = 0.5
	}
	for f := 1; f < 4; f++ {
		frames[f][60] = 1.0
	}

	r := NotesFromActivations(frames, 10.0, 0.3)
	require.Len(t, r.Notes, 2)
	assert.Less(t, r.Notes[0].Start, r.Notes[1].Start)
	assert.Equal(t, 127, r.Notes[0].Velocity)
}

func TestNotesFromActivationsBelowThreshold(t *testing.T) {
	frames := make([][]float32, 10)
	for i := range frames {
		frames[i] = make([]float32, 88)
		frames[i][40] = 0.1
	}
	r := NotesFromActivations(frames, 10.0, 0.3)
	assert.Empty(t, r.Notes)
	assert.Equal(t, 0.0, r.Confidence)
}

func TestPolyphonicUnavailableWithoutModel(t *testing.T) {
	pt := NewPolyphonicTranscriber("/nonexistent/model.onnx")
	defer pt.Close()
	assert.False(t, pt.Available())
	assert.Error(t, pt.Err())
}
