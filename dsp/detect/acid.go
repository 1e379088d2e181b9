package detect

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/dsp/spectral"
)

// AcidResult describes resonant-filter-sweep activity in the bass band,
// the signature of acid-style basslines.
type AcidResult struct {
	IsAcid               bool    `json:"is_acid"`
	Confidence           float64 `json:"confidence"`             // 0-1
	ResonanceLevel       float64 `json:"resonance_level"`        // 0-1, centroid excursion strength
	CentroidOscillationHz float64 `json:"centroid_oscillation_hz"` // sweep rate
	BassRhythmDensity    float64 `json:"bass_rhythm_density"`    // bass onsets per second
}

// AcidParams controls the acid detector.
type AcidParams struct {
	BassCutoffHz  float64 `json:"bass_cutoff_hz"` // band limit (default: 400)
	HopSeconds    float64 `json:"hop_seconds"`    // centroid track hop (default: 0.05)
	WindowSize    int     `json:"window_size"`    // centroid FFT window (default: 2048)
	MinOscillation float64 `json:"min_oscillation"` // Hz, slowest sweep that counts (default: 0.25)
	MaxOscillation float64 `json:"max_oscillation"` // Hz, fastest sweep that counts (default: 8)
}

// AcidDetector tracks short-term spectral-centroid oscillation inside the
// bass band as a proxy for a resonant filter sweep.
type AcidDetector struct {
	params     AcidParams
	sampleRate int
}

// NewAcidDetector creates a detector with default parameters.
func NewAcidDetector(sampleRate int) *AcidDetector {
	return NewAcidDetectorWithParams(sampleRate, AcidParams{})
}

// NewAcidDetectorWithParams creates a detector with custom parameters.
func NewAcidDetectorWithParams(sampleRate int, params AcidParams) *AcidDetector {
	if params.BassCutoffHz <= 0 {
		params.BassCutoffHz = 400.0
	}
	if params.HopSeconds <= 0 {
		params.HopSeconds = 0.05
	}
	if params.WindowSize <= 0 {
		params.WindowSize = 2048
	}
	if params.MinOscillation <= 0 {
		params.MinOscillation = 0.25
	}
	if params.MaxOscillation <= 0 {
		params.MaxOscillation = 8.0
	}
	return &AcidDetector{params: params, sampleRate: sampleRate}
}

// Detect analyzes the buffer. Very short or silent input returns the
// zeroed, IsAcid:false default.
func (ad *AcidDetector) Detect(buf *audio.Buffer, bpmHint float64) AcidResult {
	result := AcidResult{}
	if buf == nil || buf.Duration() < minAnalysisSeconds {
		return result
	}

	signal := buf.Mono()
	if audio.RMS(signal) < silenceRMS {
		return result
	}

	bass := onePoleLowpass(signal, ad.params.BassCutoffHz, ad.sampleRate)
	bass = onePoleHighpass(bass, 25.0, ad.sampleRate)
	if audio.RMS(bass) < silenceRMS {
		return result
	}

	track := ad.centroidTrack(bass)
	if len(track) < 4 {
		return result
	}

	duration := buf.Duration()
	result.CentroidOscillationHz = oscillationRate(track, duration)
	result.ResonanceLevel = resonanceLevel(track)

	onsets := rhythm.DetectOnsets(bass, ad.sampleRate, rhythm.OnsetParams{
		MinSpacing: 60.0 / (mustBPM(bpmHint) * 4.0),
	})
	result.BassRhythmDensity = rhythm.OnsetDensity(onsets, duration)

	result.Confidence = ad.confidence(result)
	result.IsAcid = result.Confidence >= 0.5
	return result
}

// centroidTrack samples the bass-band spectral centroid on a short hop.
func (ad *AcidDetector) centroidTrack(bass []float64) []float64 {
	hop := int(ad.params.HopSeconds * float64(ad.sampleRate))
	if hop <= 0 {
		hop = 1
	}
	framer := spectral.NewFramerWithSize(ad.params.WindowSize, hop)
	spectra := framer.PowerSpectra(bass)

	track := make([]float64, 0, len(spectra))
	for _, spectrum := range spectra {
		c := spectral.Centroid(spectrum, ad.params.WindowSize, ad.sampleRate)
		if c > 0 {
			track = append(track, c)
		}
	}
	return track
}

// oscillationRate counts hysteresis-guarded crossings of the mean-removed
// centroid track. A steady tone's jitter stays inside the hysteresis band
// and reports ~0 Hz.
func oscillationRate(track []float64, duration float64) float64 {
	mean, stddev := meanStddev(track)
	if mean <= 0 || duration <= 0 {
		return 0
	}
	// Jitter guard: flat tracks don't oscillate.
	if stddev/mean < 0.02 {
		return 0
	}

	band := 0.5 * stddev
	state := 0 // -1 below, +1 above, 0 undecided
	crossings := 0
	for _, c := range track {
		dev := c - mean
		switch {
		case dev > band && state <= 0:
			if state < 0 {
				crossings++
			}
			state = 1
		case dev < -band && state >= 0:
			if state > 0 {
				crossings++
			}
			state = -1
		}
	}
	// Two crossings per sweep cycle.
	return float64(crossings) / (2.0 * duration)
}

// resonanceLevel maps centroid excursion to 0-1: a strong sweep moves the
// centroid across a wide fraction of its mean.
func resonanceLevel(track []float64) float64 {
	mean, _ := meanStddev(track)
	if mean <= 0 {
		return 0
	}
	lo, hi := track[0], track[0]
	for _, c := range track {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return math.Max(0, math.Min(1, (hi-lo)/mean))
}

func (ad *AcidDetector) confidence(r AcidResult) float64 {
	if r.CentroidOscillationHz < ad.params.MinOscillation ||
		r.CentroidOscillationHz > ad.params.MaxOscillation {
		return math.Min(0.3, r.ResonanceLevel*0.3)
	}
	conf := 0.4*math.Min(1, r.ResonanceLevel/0.4) +
		0.4*math.Min(1, r.CentroidOscillationHz/2.0) +
		0.2*math.Min(1, r.BassRhythmDensity/2.0)
	return math.Min(1, conf)
}

func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func mustBPM(hint float64) float64 {
	if hint <= 0 {
		return rhythm.DefaultBPM
	}
	return hint
}
