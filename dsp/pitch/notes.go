// Package pitch provides two interchangeable note detectors sharing one
// output contract: a monophonic YIN-style fundamental tracker and a
// polyphonic neural transcription wrapper.
package pitch

import (
	"fmt"
	"math"
	"sort"
)

// DetectedNote is one note event produced by either detector.
type DetectedNote struct {
	Midi       int     `json:"midi"`       // 0-127
	Name       string  `json:"name"`       // e.g. "F#3"
	Frequency  float64 `json:"frequency"`  // Hz, equal temperament from midi
	Start      float64 `json:"start"`      // seconds
	Duration   float64 `json:"duration"`   // seconds
	Velocity   int     `json:"velocity"`   // 1-127
	Confidence float64 `json:"confidence"` // 0-1
}

// Result is the common output contract for both detectors.
type Result struct {
	Notes      []DetectedNote `json:"notes"`      // sorted ascending by start
	Confidence float64        `json:"confidence"` // 0-1 overall
	Duration   float64        `json:"duration"`   // analyzed duration, seconds
	BPM        float64        `json:"bpm"`        // hint carried through for consumers
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// MidiToFrequency converts a MIDI note number to Hz (A4 = 440 Hz, equal
// temperament).
func MidiToFrequency(midi int) float64 {
	return 440.0 * math.Pow(2.0, float64(midi-69)/12.0)
}

// FrequencyToMidi converts a frequency to the nearest MIDI note number,
// clamped to the 0-127 range. Non-positive frequencies map to 0.
func FrequencyToMidi(frequency float64) int {
	if frequency <= 0 {
		return 0
	}
	midi := int(math.Round(69.0 + 12.0*math.Log2(frequency/440.0)))
	if midi < 0 {
		midi = 0
	}
	if midi > 127 {
		midi = 127
	}
	return midi
}

// MidiNoteName returns the scientific pitch name for a MIDI note, e.g.
// MIDI 57 -> "A3".
func MidiNoteName(midi int) string {
	octave := midi/12 - 1
	return fmt.Sprintf("%s%d", noteNames[((midi%12)+12)%12], octave)
}

// ClampVelocity keeps a velocity in the MIDI 1-127 range.
func ClampVelocity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return v
}

// sortNotes orders notes ascending by start time (ties by midi).
func sortNotes(notes []DetectedNote) {
	sort.Slice(notes, func(i, j int) bool {
		if notes[i].Start == notes[j].Start {
			return notes[i].Midi < notes[j].Midi
		}
		return notes[i].Start < notes[j].Start
	})
}
