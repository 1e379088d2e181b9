package detect

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/dsp/spectral"
)

// KickDistortionResult reports harmonic saturation on periodic
// low-frequency transients.
type KickDistortionResult struct {
	IsDistorted bool    `json:"is_distorted"`
	THDRatio    float64 `json:"thd_ratio"`   // harmonics 2-5x over fundamental energy
	KickCount   int     `json:"kick_count"`  // transients measured
	Fundamental float64 `json:"fundamental"` // Hz, averaged kick fundamental
}

// KickDistortionParams controls the kick-distortion detector.
type KickDistortionParams struct {
	LowpassHz         float64 `json:"lowpass_hz"`         // transient isolation cutoff (default: 150)
	AnalysisSeconds   float64 `json:"analysis_seconds"`   // per-kick window (default: 0.08)
	MinFundamental    float64 `json:"min_fundamental"`    // Hz (default: 40)
	MaxFundamental    float64 `json:"max_fundamental"`    // Hz (default: 90)
	DistortionThreshold float64 `json:"distortion_threshold"` // THD ratio for IsDistorted (default: 0.35)
}

// KickDistortionDetector measures a THD-like ratio per detected kick: the
// energy at harmonics 2-5x the estimated fundamental relative to the
// fundamental itself.
type KickDistortionDetector struct {
	params     KickDistortionParams
	sampleRate int
}

// NewKickDistortionDetector creates a detector with default parameters.
func NewKickDistortionDetector(sampleRate int) *KickDistortionDetector {
	return NewKickDistortionDetectorWithParams(sampleRate, KickDistortionParams{})
}

// NewKickDistortionDetectorWithParams creates a detector with custom
// parameters.
func NewKickDistortionDetectorWithParams(sampleRate int, params KickDistortionParams) *KickDistortionDetector {
	if params.LowpassHz <= 0 {
		params.LowpassHz = 150.0
	}
	if params.AnalysisSeconds <= 0 {
		params.AnalysisSeconds = 0.08
	}
	if params.MinFundamental <= 0 {
		params.MinFundamental = 40.0
	}
	if params.MaxFundamental <= 0 {
		params.MaxFundamental = 90.0
	}
	if params.DistortionThreshold <= 0 {
		params.DistortionThreshold = 0.35
	}
	return &KickDistortionDetector{params: params, sampleRate: sampleRate}
}

// Detect analyzes the buffer. Short or silent input returns the zeroed,
// IsDistorted:false default. Distorted kicks score a strictly higher THD
// ratio than harmonically clean ones.
func (kd *KickDistortionDetector) Detect(buf *audio.Buffer, bpmHint float64) KickDistortionResult {
	result := KickDistortionResult{}
	if buf == nil || buf.Duration() < minAnalysisSeconds {
		return result
	}

	signal := buf.Mono()
	if audio.RMS(signal) < silenceRMS {
		return result
	}

	low := onePoleLowpass(signal, kd.params.LowpassHz, kd.sampleRate)
	minSpacing := 60.0 / (mustBPM(bpmHint) * 2.0)
	onsets := rhythm.DetectOnsets(low, kd.sampleRate, rhythm.OnsetParams{MinSpacing: minSpacing})
	if len(onsets) == 0 {
		return result
	}

	windowLen := int(kd.params.AnalysisSeconds * float64(kd.sampleRate))
	thdSum, f0Sum := 0.0, 0.0
	measured := 0

	for _, onset := range onsets {
		start := int(onset * float64(kd.sampleRate))
		if start+windowLen > len(signal) {
			break
		}
		// Harmonics are measured on the unfiltered signal so saturation
		// products above the lowpass cutoff still count.
		window := signal[start : start+windowLen]

		f0 := kd.estimateFundamental(window)
		if f0 <= 0 {
			continue
		}
		thd := kd.harmonicRatio(window, f0)
		thdSum += thd
		f0Sum += f0
		measured++
	}
	if measured == 0 {
		return result
	}

	result.KickCount = measured
	result.THDRatio = thdSum / float64(measured)
	result.Fundamental = f0Sum / float64(measured)
	result.IsDistorted = result.THDRatio >= kd.params.DistortionThreshold
	return result
}

// estimateFundamental scans the kick-fundamental range with Goertzel
// resonators and returns the strongest frequency.
func (kd *KickDistortionDetector) estimateFundamental(window []float64) float64 {
	bestFreq, bestPower := 0.0, 0.0
	for freq := kd.params.MinFundamental; freq <= kd.params.MaxFundamental; freq += 2.0 {
		power := spectral.Goertzel(window, freq, kd.sampleRate)
		if power > bestPower {
			bestPower = power
			bestFreq = freq
		}
	}
	if bestPower <= 0 {
		return 0
	}
	return bestFreq
}

// harmonicRatio is the THD-like measure: energy at 2-5x the fundamental
// over energy at the fundamental.
func (kd *KickDistortionDetector) harmonicRatio(window []float64, f0 float64) float64 {
	fundamental := spectral.Goertzel(window, f0, kd.sampleRate)
	if fundamental <= 0 {
		return 0
	}
	nyquist := float64(kd.sampleRate) / 2.0
	harmonics := 0.0
	for h := 2; h <= 5; h++ {
		freq := f0 * float64(h)
		if freq >= nyquist {
			break
		}
		harmonics += spectral.Goertzel(window, freq, kd.sampleRate)
	}
	return math.Min(harmonics/fundamental, 10.0)
}
