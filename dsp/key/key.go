// Package key estimates the musical key of a buffer by correlating its
// averaged pitch-class profile with the Krumhansl-Schmuckler key profiles.
package key

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/chord"
)

// Krumhansl-Schmuckler probe-tone profiles.
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

var rootNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Result is one key estimate.
type Result struct {
	Root       string  `json:"root"`       // e.g. "F#"
	Scale      string  `json:"scale"`      // "major" or "minor"
	Confidence float64 `json:"confidence"` // 0-1, margin of best over runner-up
}

// Estimator estimates keys for buffers at one sample rate.
type Estimator struct {
	sampleRate    int
	windowSeconds float64
}

// NewEstimator creates a key estimator with 2-second chroma windows.
func NewEstimator(sampleRate int) *Estimator {
	return &Estimator{sampleRate: sampleRate, windowSeconds: 2.0}
}

// Estimate computes the track-averaged chroma and picks the best-correlated
// of the 24 major/minor keys. Silence yields ("C", "major") with
// confidence 0.
func (e *Estimator) Estimate(buf *audio.Buffer) Result {
	neutral := Result{Root: "C", Scale: "major"}
	if buf == nil || e.sampleRate <= 0 {
		return neutral
	}

	avgChroma := e.averageChroma(buf.Mono())
	total := 0.0
	for _, v := range avgChroma {
		total += v
	}
	if total <= 0 {
		return neutral
	}

	type candidate struct {
		root  int
		scale string
		score float64
	}
	best := candidate{score: math.Inf(-1)}
	second := candidate{score: math.Inf(-1)}

	consider := func(c candidate) {
		if c.score > best.score {
			second = best
			best = c
		} else if c.score > second.score {
			second = c
		}
	}

	for root := 0; root < 12; root++ {
		rotated := rotateChroma(avgChroma, root)
		consider(candidate{root: root, scale: "major", score: pearson(rotated, majorProfile)})
		consider(candidate{root: root, scale: "minor", score: pearson(rotated, minorProfile)})
	}

	confidence := 0.0
	if best.score > 0 {
		// Normalized margin of the winner over the runner-up.
		confidence = math.Max(0, math.Min(1, (best.score-second.score)/best.score+best.score/2))
		confidence = math.Min(confidence, 1.0)
	}

	return Result{
		Root:       rootNames[best.root],
		Scale:      best.scale,
		Confidence: confidence,
	}
}

// averageChroma averages Goertzel chroma vectors over consecutive windows,
// skipping silent ones.
func (e *Estimator) averageChroma(signal []float64) []float64 {
	avg := make([]float64, 12)
	windowSize := int(e.windowSeconds * float64(e.sampleRate))
	if windowSize <= 0 {
		return avg
	}
	if len(signal) < windowSize {
		windowSize = len(signal)
	}
	if windowSize == 0 {
		return avg
	}

	count := 0
	for start := 0; start+windowSize <= len(signal); start += windowSize {
		window := signal[start : start+windowSize]
		if audio.RMS(window) < 0.005 {
			continue
		}
		for i, v := range chord.ChromaVector(window, e.sampleRate) {
			avg[i] += v
		}
		count++
	}
	if count > 0 {
		for i := range avg {
			avg[i] /= float64(count)
		}
	}
	return avg
}

// rotateChroma shifts the chroma down so the candidate root sits at index 0
// before profile correlation.
func rotateChroma(chroma []float64, root int) []float64 {
	rotated := make([]float64, len(chroma))
	for i := range chroma {
		rotated[i] = chroma[(i+root)%len(chroma)]
	}
	return rotated
}

// pearson is the Pearson correlation between a chroma vector and a profile.
func pearson(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	meanA, meanB := 0.0, 0.0
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(len(a))
	meanB /= float64(len(b))

	num, denA, denB := 0.0, 0.0, 0.0
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		num += da * db
		denA += da * da
		denB += db * db
	}
	if denA <= 0 || denB <= 0 {
		return 0
	}
	return num / math.Sqrt(denA*denB)
}
