package detect

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/rhythm"
)

// DecayClass labels how long bass notes ring out.
type DecayClass string

const (
	DecayPunchy    DecayClass = "punchy"    // < 300 ms
	DecayMedium    DecayClass = "medium"    // 300-600 ms
	DecayRolling   DecayClass = "rolling"   // 600-1000 ms
	DecaySustained DecayClass = "sustained" // > 1000 ms
)

// BassDecayResult describes sub-bass envelope behavior.
type BassDecayResult struct {
	Class          DecayClass `json:"class"`
	AverageDecayMs float64    `json:"average_decay_ms"` // time to -6 dB
	TransientRatio float64    `json:"transient_ratio"`  // bass energy within 100ms of onsets
	OnsetCount     int        `json:"onset_count"`
}

// BassDecayParams controls the bass-decay detector.
type BassDecayParams struct {
	LowpassHz      float64 `json:"lowpass_hz"`      // sub-bass isolation (default: 150)
	EnvelopeMs     float64 `json:"envelope_ms"`     // RMS envelope resolution (default: 10)
	TransientMs    float64 `json:"transient_ms"`    // onset energy window (default: 100)
	MaxDecayMs     float64 `json:"max_decay_ms"`    // decay search limit (default: 1500)
}

// BassDecayDetector isolates sub-bass, finds bass onsets, and measures the
// per-onset decay time to -6 dB.
type BassDecayDetector struct {
	params     BassDecayParams
	sampleRate int
}

// NewBassDecayDetector creates a detector with default parameters.
func NewBassDecayDetector(sampleRate int) *BassDecayDetector {
	return NewBassDecayDetectorWithParams(sampleRate, BassDecayParams{})
}

// NewBassDecayDetectorWithParams creates a detector with custom parameters.
func NewBassDecayDetectorWithParams(sampleRate int, params BassDecayParams) *BassDecayDetector {
	if params.LowpassHz <= 0 {
		params.LowpassHz = 150.0
	}
	if params.EnvelopeMs <= 0 {
		params.EnvelopeMs = 10.0
	}
	if params.TransientMs <= 0 {
		params.TransientMs = 100.0
	}
	if params.MaxDecayMs <= 0 {
		params.MaxDecayMs = 1500.0
	}
	return &BassDecayDetector{params: params, sampleRate: sampleRate}
}

// Detect analyzes the buffer. Short/silent input returns the zeroed
// default; fewer than 3 bass onsets classifies as sustained directly.
func (bd *BassDecayDetector) Detect(buf *audio.Buffer, bpmHint float64) BassDecayResult {
	result := BassDecayResult{Class: DecaySustained}
	if buf == nil || buf.Duration() < minAnalysisSeconds {
		return BassDecayResult{}
	}

	signal := buf.Mono()
	if audio.RMS(signal) < silenceRMS {
		return BassDecayResult{}
	}

	bass := onePoleLowpass(signal, bd.params.LowpassHz, bd.sampleRate)
	minSpacing := 60.0 / (mustBPM(bpmHint) * 2.0)
	onsets := rhythm.DetectOnsets(bass, bd.sampleRate, rhythm.OnsetParams{
		Threshold:  2.0,
		MinSpacing: minSpacing,
	})
	result.OnsetCount = len(onsets)
	result.TransientRatio = bd.transientRatio(bass, onsets)

	if len(onsets) < 3 {
		return result
	}

	envelope := bd.rmsEnvelope(bass)
	envHop := bd.envelopeHop()

	decaySum := 0.0
	measured := 0
	for _, onset := range onsets {
		decay := bd.decayTimeMs(envelope, envHop, onset)
		if decay > 0 {
			decaySum += decay
			measured++
		}
	}
	if measured == 0 {
		return result
	}

	result.AverageDecayMs = decaySum / float64(measured)
	result.Class = classifyDecay(result.AverageDecayMs)
	return result
}

func classifyDecay(decayMs float64) DecayClass {
	switch {
	case decayMs < 300:
		return DecayPunchy
	case decayMs < 600:
		return DecayMedium
	case decayMs < 1000:
		return DecayRolling
	default:
		return DecaySustained
	}
}

func (bd *BassDecayDetector) envelopeHop() int {
	hop := int(bd.params.EnvelopeMs / 1000.0 * float64(bd.sampleRate))
	if hop <= 0 {
		hop = 1
	}
	return hop
}

// rmsEnvelope computes short-window RMS at the envelope resolution.
func (bd *BassDecayDetector) rmsEnvelope(signal []float64) []float64 {
	hop := bd.envelopeHop()
	numFrames := len(signal) / hop
	envelope := make([]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		envelope[t] = audio.RMS(signal[t*hop : (t+1)*hop])
	}
	return envelope
}

// decayTimeMs finds the envelope peak just after the onset and measures how
// long it takes to fall 6 dB (half amplitude). Returns 0 when the level
// never decays inside the search limit or the next onset truncates it.
func (bd *BassDecayDetector) decayTimeMs(envelope []float64, envHop int, onset float64) float64 {
	frameMs := float64(envHop) / float64(bd.sampleRate) * 1000.0
	startFrame := int(onset * float64(bd.sampleRate) / float64(envHop))
	if startFrame >= len(envelope) {
		return 0
	}

	// Peak within 50ms of the onset.
	peakSearch := startFrame + int(50.0/frameMs) + 1
	if peakSearch > len(envelope) {
		peakSearch = len(envelope)
	}
	peakFrame, peak := startFrame, envelope[startFrame]
	for t := startFrame; t < peakSearch; t++ {
		if envelope[t] > peak {
			peak = envelope[t]
			peakFrame = t
		}
	}
	if peak <= 0 {
		return 0
	}

	target := peak * 0.5 // -6 dB
	maxFrames := int(bd.params.MaxDecayMs / frameMs)
	for t := peakFrame + 1; t < len(envelope) && t-peakFrame <= maxFrames; t++ {
		if envelope[t] <= target {
			return float64(t-peakFrame) * frameMs
		}
	}
	return bd.params.MaxDecayMs
}

// transientRatio is the fraction of total bass energy within the transient
// window after each onset.
func (bd *BassDecayDetector) transientRatio(bass []float64, onsets []float64) float64 {
	total := 0.0
	for _, s := range bass {
		total += s * s
	}
	if total <= 0 {
		return 0
	}

	windowLen := int(bd.params.TransientMs / 1000.0 * float64(bd.sampleRate))
	transient := 0.0
	covered := make([]bool, len(bass))
	for _, onset := range onsets {
		start := int(onset * float64(bd.sampleRate))
		for i := start; i < start+windowLen && i < len(bass); i++ {
			if !covered[i] {
				transient += bass[i] * bass[i]
				covered[i] = true
			}
		}
	}
	return math.Min(1, transient/total)
}
