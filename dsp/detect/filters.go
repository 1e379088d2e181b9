// Package detect houses the specialized production-forensics detectors:
// acid-resonance, kick-distortion, and bass-decay analysis. Every detector
// returns documented zeroed defaults for input too short or silent to
// judge, so downstream assembly always succeeds.
package detect

import "math"

// minAnalysisSeconds is the shortest input any detector will judge.
const minAnalysisSeconds = 0.5

// silenceRMS is the level under which detectors report their neutral
// defaults.
const silenceRMS = 1e-4

// onePoleLowpass applies a first-order IIR lowpass at the given cutoff.
// Used to isolate bass content before transient and sweep analysis.
func onePoleLowpass(signal []float64, cutoffHz float64, sampleRate int) []float64 {
	if len(signal) == 0 || sampleRate <= 0 || cutoffHz <= 0 {
		return []float64{}
	}
	alpha := 1.0 - math.Exp(-2.0*math.Pi*cutoffHz/float64(sampleRate))
	out := make([]float64, len(signal))
	y := 0.0
	for i, x := range signal {
		y += alpha * (x - y)
		out[i] = y
	}
	return out
}

// onePoleHighpass removes content below the cutoff (complement of the
// lowpass), used to strip DC drift from band-limited signals.
func onePoleHighpass(signal []float64, cutoffHz float64, sampleRate int) []float64 {
	low := onePoleLowpass(signal, cutoffHz, sampleRate)
	out := make([]float64, len(signal))
	for i := range signal {
		out[i] = signal[i] - low[i]
	}
	return out
}
