// Package stereo analyzes the spatial image of a two-channel buffer:
// inter-channel correlation, perceived width, and mono compatibility.
package stereo

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/soniqlab/trackprint/audio"
)

// Compatibility classifies how safely a mix folds down to mono.
type Compatibility string

const (
	CompatibilityGood    Compatibility = "good"
	CompatibilityCaution Compatibility = "caution"
	CompatibilityPoor    Compatibility = "poor"
)

// Result describes the stereo image of a buffer.
type Result struct {
	Correlation   float64       `json:"correlation"`    // Pearson correlation, -1..1
	Width         float64       `json:"width"`          // 0 (mono) .. 1 (fully decorrelated)
	Compatibility Compatibility `json:"compatibility"`  // mono fold-down safety
	MidEnergy     float64       `json:"mid_energy"`     // RMS of (L+R)/2
	SideEnergy    float64       `json:"side_energy"`    // RMS of (L-R)/2
	IsStereo      bool          `json:"is_stereo"`      // false for mono input
}

// Analyze measures the stereo image. Mono input reports correlation 1 and
// width 0; silent channels are treated as perfectly correlated.
func Analyze(buf *audio.Buffer) Result {
	if buf == nil || buf.NumChannels() < 2 {
		return Result{Correlation: 1.0, Width: 0, Compatibility: CompatibilityGood}
	}

	n := buf.NumSamples()
	left := buf.Channels[0][:n]
	right := buf.Channels[1][:n]

	result := Result{IsStereo: true}

	mid := make([]float64, n)
	side := make([]float64, n)
	for i := 0; i < n; i++ {
		mid[i] = (left[i] + right[i]) / 2.0
		side[i] = (left[i] - right[i]) / 2.0
	}
	result.MidEnergy = audio.RMS(mid)
	result.SideEnergy = audio.RMS(side)

	result.Correlation = correlation(left, right)
	result.Width = width(result.Correlation, result.MidEnergy, result.SideEnergy)
	result.Compatibility = classify(result.Correlation)
	return result
}

// correlation is the Pearson correlation of the two channels. Degenerate
// (constant) channels correlate perfectly, matching the mono case.
func correlation(left, right []float64) float64 {
	if len(left) == 0 {
		return 1.0
	}
	c := stat.Correlation(left, right, nil)
	if math.IsNaN(c) {
		return 1.0
	}
	return math.Max(-1.0, math.Min(1.0, c))
}

// width blends decorrelation with the side/mid energy ratio so a barely
// decorrelated but quiet side signal doesn't read as wide.
func width(corr, midEnergy, sideEnergy float64) float64 {
	if midEnergy <= 0 && sideEnergy <= 0 {
		return 0
	}
	ratio := sideEnergy / (midEnergy + sideEnergy + 1e-12)
	w := (1.0 - math.Abs(corr)) * 0.5 * (1.0 + ratio)
	// Strong side content widens beyond pure decorrelation.
	w += ratio * 0.5
	return math.Max(0, math.Min(1, w))
}

func classify(corr float64) Compatibility {
	switch {
	case corr >= 0.5:
		return CompatibilityGood
	case corr >= 0.0:
		return CompatibilityCaution
	default:
		return CompatibilityPoor
	}
}
