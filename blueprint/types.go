package blueprint

import (
	"github.com/soniqlab/trackprint/dsp/chord"
	"github.com/soniqlab/trackprint/dsp/detect"
	"github.com/soniqlab/trackprint/dsp/pitch"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/dsp/spectral"
	"github.com/soniqlab/trackprint/dsp/stereo"
	"github.com/soniqlab/trackprint/mixdoctor"
)

// Key is a root/scale pair with the estimator's confidence.
type Key struct {
	Root       string  `json:"root"`
	Scale      string  `json:"scale"`
	Confidence float64 `json:"confidence"`
}

// Corrections records which measured telemetry fields were overridden by an
// enrichment provider. Telemetry values are otherwise never rewritten after
// assembly.
type Corrections struct {
	BPMCorrected bool   `json:"bpm_corrected"`
	KeyCorrected bool   `json:"key_corrected"`
	Source       string `json:"source,omitempty"` // provider name
}

// Telemetry holds every measured quantity of the blueprint. Enrichment may
// only touch BPM and Key, and only through the explicit correction payload.
type Telemetry struct {
	BPM           float64 `json:"bpm"`
	BPMConfidence float64 `json:"bpm_confidence"`
	Key           Key     `json:"key"`

	Swing          rhythm.SwingResult          `json:"swing"`
	Acid           detect.AcidResult           `json:"acid"`
	KickDistortion detect.KickDistortionResult `json:"kick_distortion"`
	BassDecay      detect.BassDecayResult      `json:"bass_decay"`

	Chords chord.Result `json:"chords"`
	Pitch  pitch.Result `json:"pitch"`

	Bands            []spectral.BandEnergy `json:"bands"`
	SpectralCentroid float64               `json:"spectral_centroid"`
	CrestFactorDb    float64               `json:"crest_factor_db"`
	IntegratedLUFS   float64               `json:"integrated_lufs"`
	TruePeakDb       float64               `json:"true_peak_db"`
	Stereo           *stereo.Result        `json:"stereo,omitempty"`

	Corrections Corrections `json:"corrections"`
}

// Section is one arrangement region derived from the short-term loudness
// contour.
type Section struct {
	Name         string  `json:"name"`
	Start        float64 `json:"start"` // seconds
	End          float64 `json:"end"`   // seconds
	LoudnessLUFS float64 `json:"loudness_lufs"`
}

// Instrument is one suggested element of the instrumentation list. Element
// is the stable matching key; Timbre and Device are prose that enrichment
// may replace.
type Instrument struct {
	Element string `json:"element"`
	Timbre  string `json:"timbre"`
	Device  string `json:"device"`
}

// FXHint is one suggested processing artifact. Artifact is the stable
// matching key; Recommendation is prose that enrichment may replace.
type FXHint struct {
	Artifact       string `json:"artifact"`
	Recommendation string `json:"recommendation"`
}

// Meta describes how and from what the blueprint was produced.
type Meta struct {
	Provider   string  `json:"provider"`
	ElapsedMs  int64   `json:"elapsed_ms"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration"`
	GenreID    string  `json:"genre_id"`
}

// ReconstructionBlueprint is the top-level analysis output. It is plain
// data with no cyclic references, safe to serialize to JSON and hand across
// process boundaries unchanged.
type ReconstructionBlueprint struct {
	Telemetry         Telemetry         `json:"telemetry"`
	GrooveDescription string            `json:"groove_description"`
	Sections          []Section         `json:"sections"`
	Instrumentation   []Instrument      `json:"instrumentation"`
	FXChain           []FXHint          `json:"fx_chain"`
	SecretSauce       string            `json:"secret_sauce"`
	MixReport         *mixdoctor.Report `json:"mix_report,omitempty"`
	Meta              Meta              `json:"meta"`
}

// Clone returns a deep copy. Merging works on clones so callers keep an
// untouched original.
func (bp *ReconstructionBlueprint) Clone() *ReconstructionBlueprint {
	out := *bp
	out.Telemetry.Bands = append([]spectral.BandEnergy(nil), bp.Telemetry.Bands...)
	if bp.Telemetry.Stereo != nil {
		s := *bp.Telemetry.Stereo
		out.Telemetry.Stereo = &s
	}
	out.Telemetry.Chords.Segments = append([]chord.Segment(nil), bp.Telemetry.Chords.Segments...)
	out.Telemetry.Pitch.Notes = append([]pitch.DetectedNote(nil), bp.Telemetry.Pitch.Notes...)
	out.Sections = append([]Section(nil), bp.Sections...)
	out.Instrumentation = append([]Instrument(nil), bp.Instrumentation...)
	out.FXChain = append([]FXHint(nil), bp.FXChain...)
	if bp.MixReport != nil {
		r := *bp.MixReport
		r.Bands = append([]mixdoctor.MixAdvice(nil), bp.MixReport.Bands...)
		if bp.MixReport.Loudness != nil {
			l := *bp.MixReport.Loudness
			r.Loudness = &l
		}
		if bp.MixReport.Stereo != nil {
			s := *bp.MixReport.Stereo
			r.Stereo = &s
		}
		out.MixReport = &r
	}
	return &out
}
