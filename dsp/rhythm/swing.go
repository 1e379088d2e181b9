package rhythm

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GrooveClass labels the detected timing feel.
type GrooveClass string

const (
	GrooveStraight    GrooveClass = "straight"
	GrooveSlightSwing GrooveClass = "slight-swing"
	GrooveHeavySwing  GrooveClass = "heavy-swing"
	GrooveShuffle     GrooveClass = "shuffle"
)

// SwingResult describes alternating long/short beat spacing.
type SwingResult struct {
	SwingPercent    float64     `json:"swing_percent"` // 0 (straight) .. 50
	Class           GrooveClass `json:"class"`
	IntervalMean    float64     `json:"interval_mean"`     // seconds
	IntervalVar     float64     `json:"interval_variance"` // seconds^2
	Lag1Correlation float64     `json:"lag1_correlation"`  // negative when alternating
}

// minBeatsForSwing is the fewest beat positions a swing judgement needs.
const minBeatsForSwing = 8

// AnalyzeSwing computes interval statistics over a sequence of beat
// positions to detect alternating long/short spacing. Fewer than 8 beats
// classifies as straight with 0%.
func AnalyzeSwing(beats []float64) SwingResult {
	result := SwingResult{Class: GrooveStraight}
	if len(beats) < minBeatsForSwing {
		return result
	}

	intervals := make([]float64, 0, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		iv := beats[i] - beats[i-1]
		if iv > 0 {
			intervals = append(intervals, iv)
		}
	}
	if len(intervals) < minBeatsForSwing-1 {
		return result
	}

	result.IntervalMean = stat.Mean(intervals, nil)
	result.IntervalVar = stat.Variance(intervals, nil)
	result.Lag1Correlation = lag1Autocorrelation(intervals)

	// Alternating spacing shows up as odd/even interval asymmetry with a
	// negative lag-1 autocorrelation.
	longMean, shortMean := alternatingMeans(intervals)
	if longMean <= 0 || shortMean <= 0 {
		return result
	}

	swing := (longMean/(longMean+shortMean) - 0.5) * 100.0
	if swing < 0 {
		swing = -swing
	}
	if swing > 50 {
		swing = 50
	}
	if result.Lag1Correlation > -0.1 {
		// No consistent alternation: residual asymmetry is jitter.
		swing = math.Min(swing, 2.0)
	}
	result.SwingPercent = swing
	result.Class = classifySwing(swing)
	return result
}

// alternatingMeans splits intervals into odd/even positions and returns
// (longer mean, shorter mean).
func alternatingMeans(intervals []float64) (float64, float64) {
	var even, odd []float64
	for i, iv := range intervals {
		if i%2 == 0 {
			even = append(even, iv)
		} else {
			odd = append(odd, iv)
		}
	}
	if len(even) == 0 || len(odd) == 0 {
		return 0, 0
	}
	evenMean := stat.Mean(even, nil)
	oddMean := stat.Mean(odd, nil)
	if evenMean >= oddMean {
		return evenMean, oddMean
	}
	return oddMean, evenMean
}

// lag1Autocorrelation of a series; -1 for strict alternation, ~0 for
// independent jitter.
func lag1Autocorrelation(series []float64) float64 {
	if len(series) < 3 {
		return 0
	}
	c := stat.Correlation(series[:len(series)-1], series[1:], nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}

func classifySwing(percent float64) GrooveClass {
	switch {
	case percent < 3:
		return GrooveStraight
	case percent < 10:
		return GrooveSlightSwing
	case percent < 15:
		return GrooveHeavySwing
	default:
		return GrooveShuffle
	}
}
