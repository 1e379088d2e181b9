package blueprint

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/key"
	"github.com/soniqlab/trackprint/dsp/loudness"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/dsp/spectral"
	"github.com/soniqlab/trackprint/dsp/stereo"
)

// AudioFeatures aggregates every directly measured quantity of one analysis
// run. It is created once per run and treated as immutable afterwards; all
// downstream consumers (Mix Doctor, assembly, enrichment) read from it.
type AudioFeatures struct {
	BPM           float64 `json:"bpm"`
	BPMConfidence float64 `json:"bpm_confidence"`

	KeyRoot       string  `json:"key_root"`
	KeyScale      string  `json:"key_scale"`
	KeyConfidence float64 `json:"key_confidence"`

	SpectralCentroid float64   `json:"spectral_centroid"` // Hz, frame average
	RMSMean          float64   `json:"rms_mean"`
	RMSProfile       []float64 `json:"rms_profile"` // per 2048-sample frame
	CrestFactorDb    float64   `json:"crest_factor_db"`
	OnsetCount       int       `json:"onset_count"`
	OnsetDensity     float64   `json:"onset_density"` // onsets per second
	Onsets           []float64 `json:"-"`             // onset times, seconds

	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`

	Bands []spectral.BandEnergy `json:"bands"`
	MFCC  spectral.MFCCResult   `json:"mfcc"`

	Loudness *loudness.Result `json:"loudness,omitempty"`
	Stereo   *stereo.Result   `json:"stereo,omitempty"`
}

// ExtractFeatures measures the full feature set of a decoded buffer. The
// hint seeds BPM estimation when onsets are too sparse to support one. All
// outputs are finite for any finite input, including silence.
func ExtractFeatures(buf *audio.Buffer, bpmHint float64) *AudioFeatures {
	mono := buf.Mono()
	framer := spectral.NewFramer()
	powerSpectra := framer.PowerSpectra(mono)

	bandAnalyzer := spectral.NewBandAnalyzer(buf.SampleRate, framer.FrameSize)
	mfcc := spectral.NewMFCC(buf.SampleRate, framer.FrameSize)

	onsets := rhythm.DetectOnsets(mono, buf.SampleRate, rhythm.OnsetParams{})
	bpm := rhythm.EstimateBPM(onsets, bpmHint)
	tonality := key.NewEstimator(buf.SampleRate).Estimate(buf)

	f := &AudioFeatures{
		BPM:           bpm.BPM,
		BPMConfidence: bpm.Confidence,

		KeyRoot:       tonality.Root,
		KeyScale:      tonality.Scale,
		KeyConfidence: tonality.Confidence,

		SpectralCentroid: spectral.CentroidMean(powerSpectra, framer.FrameSize, buf.SampleRate),
		RMSMean:          audio.RMS(mono),
		RMSProfile:       rmsProfile(framer, mono),
		OnsetCount:       len(onsets),
		OnsetDensity:     rhythm.OnsetDensity(onsets, buf.Duration()),
		Onsets:           onsets,

		Duration:   buf.Duration(),
		SampleRate: buf.SampleRate,
		Channels:   buf.NumChannels(),

		Bands: bandAnalyzer.Analyze(powerSpectra),
		MFCC:  mfcc.ComputeStats(powerSpectra),
	}
	f.CrestFactorDb = crestFactorDb(mono, f.RMSMean)

	meter := loudness.NewMeter(buf.SampleRate)
	lr := meter.Measure(buf)
	f.Loudness = &lr

	if buf.NumChannels() >= 2 {
		sr := stereo.Analyze(buf)
		f.Stereo = &sr
	}
	return f
}

// crestFactorDb is the peak-to-RMS ratio in dB, the usual proxy for how
// heavily a signal has been dynamics-compressed. Silence reports 0.
func crestFactorDb(samples []float64, rms float64) float64 {
	peak := audio.Peak(samples)
	if rms <= 0 || peak <= 0 {
		return 0
	}
	return 20.0 * math.Log10(peak/rms)
}

func rmsProfile(framer *spectral.Framer, signal []float64) []float64 {
	energies := framer.FrameEnergies(signal)
	profile := make([]float64, len(energies))
	for i, e := range energies {
		profile[i] = math.Sqrt(e / float64(framer.FrameSize))
	}
	return profile
}
