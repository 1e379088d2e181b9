package rhythm

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultBPM is assumed when a signal carries too few onsets to estimate
// tempo.
const DefaultBPM = 120.0

// Tempo folding range: estimates are octave-folded until they land in
// [70, 180), the plausible range for the genres this module calibrates.
const (
	minBPM = 70.0
	maxBPM = 180.0
)

// BPMEstimate is one tempo estimate with its supporting evidence.
type BPMEstimate struct {
	BPM        float64 `json:"bpm"`
	Confidence float64 `json:"confidence"` // 0-1, inter-onset consistency
	OnsetCount int     `json:"onset_count"`
}

// EstimateBPM derives tempo from the median inter-onset interval. Fewer
// than 4 onsets falls back to the hint (DefaultBPM when the hint is
// unusable) with confidence 0.
func EstimateBPM(onsets []float64, hint float64) BPMEstimate {
	fallback := hint
	if fallback <= 0 {
		fallback = DefaultBPM
	}
	if len(onsets) < 4 {
		return BPMEstimate{BPM: fallback, OnsetCount: len(onsets)}
	}

	intervals := make([]float64, 0, len(onsets)-1)
	for i := 1; i < len(onsets); i++ {
		iv := onsets[i] - onsets[i-1]
		if iv > 0 {
			intervals = append(intervals, iv)
		}
	}
	if len(intervals) < 3 {
		return BPMEstimate{BPM: fallback, OnsetCount: len(onsets)}
	}

	sorted := append([]float64(nil), intervals...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	if median <= 0 {
		return BPMEstimate{BPM: fallback, OnsetCount: len(onsets)}
	}

	bpm := FoldBPM(60.0 / median)

	// Consistency: how tightly intervals cluster around the median.
	mean := stat.Mean(intervals, nil)
	stddev := 0.0
	if len(intervals) > 1 {
		stddev = stat.StdDev(intervals, nil)
	}
	confidence := 0.0
	if mean > 0 {
		confidence = math.Max(0, 1.0-stddev/mean)
	}

	return BPMEstimate{BPM: bpm, Confidence: confidence, OnsetCount: len(onsets)}
}

// FoldBPM octave-folds a tempo into the [70, 180) range.
func FoldBPM(bpm float64) float64 {
	if bpm <= 0 {
		return DefaultBPM
	}
	for bpm < minBPM {
		bpm *= 2
	}
	for bpm >= maxBPM {
		bpm /= 2
	}
	return bpm
}
