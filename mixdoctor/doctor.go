// Package mixdoctor scores measured audio features against a genre
// calibration profile and produces actionable mixing advice.
//
// The report is fully derived: running the doctor twice on the same
// features and profile yields the same report. All scores live in
// [0, 100], with 100 reserved for a mix that sits exactly on every
// optimal target with no penalties.
package mixdoctor

import (
	"fmt"
	"math"

	"github.com/soniqlab/trackprint/dsp/spectral"
	"github.com/soniqlab/trackprint/genre"
)

// Issue classifies a single piece of advice.
type Issue string

const (
	IssueTooLoud       Issue = "too-loud"
	IssueTooQuiet      Issue = "too-quiet"
	IssueOptimal       Issue = "optimal"
	IssueTooCompressed Issue = "too-compressed"
	IssueTooDynamic    Issue = "too-dynamic"
)

// LoudnessInput carries the measured loudness figures, when available.
type LoudnessInput struct {
	IntegratedLUFS float64 `json:"integrated_lufs"`
	TruePeakDb     float64 `json:"true_peak_db"`
}

// StereoInput carries the measured stereo image figures, when available.
type StereoInput struct {
	Correlation float64 `json:"correlation"`
	Width       float64 `json:"width"`
}

// Input is the measured feature set the doctor evaluates. Bands and
// CrestFactorDb are always required; Loudness and Stereo are optional and
// skipped when nil.
type Input struct {
	Bands         []spectral.BandEnergy `json:"bands"`
	CrestFactorDb float64               `json:"crest_factor_db"`
	Loudness      *LoudnessInput        `json:"loudness,omitempty"`
	Stereo        *StereoInput          `json:"stereo,omitempty"`
}

// MixAdvice is the verdict for a single spectral band.
type MixAdvice struct {
	Band        string  `json:"band"`
	Issue       Issue   `json:"issue"`
	Message     string  `json:"message"`
	DeviationDb float64 `json:"deviation_db"`
	Score       float64 `json:"score"`
}

// DynamicsAdvice is the verdict on crest factor against the profile range.
type DynamicsAdvice struct {
	Issue         Issue   `json:"issue"`
	Message       string  `json:"message"`
	CrestFactorDb float64 `json:"crest_factor_db"`
	TargetMinDb   float64 `json:"target_min_db"`
	TargetMaxDb   float64 `json:"target_max_db"`
	Penalty       float64 `json:"penalty"`
}

// LoudnessAdvice is the verdict on integrated loudness and true peak.
type LoudnessAdvice struct {
	Issue          Issue   `json:"issue"`
	Message        string  `json:"message"`
	IntegratedLUFS float64 `json:"integrated_lufs"`
	TruePeakDb     float64 `json:"true_peak_db"`
	TruePeakOver   bool    `json:"true_peak_over"`
	Penalty        float64 `json:"penalty"`
}

// StereoAdvice is the verdict on the stereo image.
type StereoAdvice struct {
	Message     string  `json:"message"`
	Correlation float64 `json:"correlation"`
	Width       float64 `json:"width"`
	PhaseRisk   bool    `json:"phase_risk"`
	TooWide     bool    `json:"too_wide"`
	TooNarrow   bool    `json:"too_narrow"`
	Penalty     float64 `json:"penalty"`
}

// Report is the full Mix Doctor output for one analysis run.
type Report struct {
	GenreID      string          `json:"genre_id"`
	GenreName    string          `json:"genre_name"`
	Profile      genre.Profile   `json:"profile"`
	Bands        []MixAdvice     `json:"bands"`
	Dynamics     DynamicsAdvice  `json:"dynamics"`
	Loudness     *LoudnessAdvice `json:"loudness,omitempty"`
	Stereo       *StereoAdvice   `json:"stereo,omitempty"`
	OverallScore float64         `json:"overall_score"`
}

// Doctor scores feature sets against a fixed genre profile.
type Doctor struct {
	profile genre.Profile
}

// NewDoctor creates a doctor for the given genre id, falling back to the
// default profile when the id is unknown.
func NewDoctor(genreID string) *Doctor {
	return &Doctor{profile: genre.LookupOrDefault(genreID)}
}

// Profile returns the calibration profile the doctor scores against.
func (d *Doctor) Profile() genre.Profile {
	return d.profile
}

// Diagnose evaluates the measured input against the profile and returns the
// report. Bands without a profile target are ignored.
func (d *Doctor) Diagnose(in Input) *Report {
	report := &Report{
		GenreID:   d.profile.ID,
		GenreName: d.profile.Name,
		Profile:   d.profile,
	}

	var scoreSum float64
	var scored int
	for _, be := range in.Bands {
		target, ok := d.profile.Bands[be.Band.Name]
		if !ok {
			continue
		}
		advice := bandAdvice(be, target)
		report.Bands = append(report.Bands, advice)
		scoreSum += advice.Score
		scored++
	}

	var penalties float64
	report.Dynamics = dynamicsAdvice(in.CrestFactorDb, d.profile.CrestFactor)
	penalties += report.Dynamics.Penalty

	if in.Loudness != nil {
		la := loudnessAdvice(*in.Loudness, d.profile.LUFS)
		report.Loudness = &la
		penalties += la.Penalty
	}
	if in.Stereo != nil {
		sa := stereoAdvice(*in.Stereo)
		report.Stereo = &sa
		penalties += sa.Penalty
	}

	if scored > 0 {
		report.OverallScore = clampScore(scoreSum/float64(scored) - penalties)
	}
	return report
}

func bandAdvice(be spectral.BandEnergy, target genre.BandTarget) MixAdvice {
	deviation := be.AverageDb - target.OptimalDb
	score := clampScore(100 - math.Abs(deviation)*bandScoreSlope)

	issue := IssueOptimal
	switch {
	case be.AverageDb > target.MaxDb:
		issue = IssueTooLoud
	case be.AverageDb < target.MinDb:
		issue = IssueTooQuiet
	}
	return MixAdvice{
		Band:        be.Band.Name,
		Issue:       issue,
		Message:     bandMessage(be.Band.Name, issue, deviation),
		DeviationDb: deviation,
		Score:       score,
	}
}

func dynamicsAdvice(crestDb float64, target genre.Range) DynamicsAdvice {
	advice := DynamicsAdvice{
		Issue:         IssueOptimal,
		CrestFactorDb: crestDb,
		TargetMinDb:   target.Min,
		TargetMaxDb:   target.Max,
	}
	switch {
	case crestDb < target.Min:
		over := target.Min - crestDb
		advice.Issue = IssueTooCompressed
		advice.Penalty = math.Min(over*dynamicsPenaltyPerDb, dynamicsPenaltyCap)
		advice.Message = fmt.Sprintf(
			"crest factor %.1f dB is %.1f dB below the genre range; ease off bus compression or limiting to restore transients",
			crestDb, over)
	case crestDb > target.Max:
		over := crestDb - target.Max
		advice.Issue = IssueTooDynamic
		advice.Penalty = math.Min(over*dynamicsPenaltyPerDb, dynamicsPenaltyCap)
		advice.Message = fmt.Sprintf(
			"crest factor %.1f dB is %.1f dB above the genre range; gentle compression or saturation would glue the mix",
			crestDb, over)
	default:
		advice.Message = fmt.Sprintf("crest factor %.1f dB sits inside the genre range", crestDb)
	}
	return advice
}

func loudnessAdvice(in LoudnessInput, target genre.Range) LoudnessAdvice {
	advice := LoudnessAdvice{
		Issue:          IssueOptimal,
		IntegratedLUFS: in.IntegratedLUFS,
		TruePeakDb:     in.TruePeakDb,
	}
	switch {
	case in.IntegratedLUFS < target.Min:
		under := target.Min - in.IntegratedLUFS
		advice.Issue = IssueTooQuiet
		advice.Penalty = math.Min(under*loudnessPenaltyPerDb, loudnessPenaltyCap)
		advice.Message = fmt.Sprintf(
			"integrated loudness %.1f LUFS is %.1f LU below the genre range; the track will sound quiet next to references",
			in.IntegratedLUFS, under)
	case in.IntegratedLUFS > target.Max:
		over := in.IntegratedLUFS - target.Max
		advice.Issue = IssueTooLoud
		advice.Penalty = math.Min(over*loudnessPenaltyPerDb, loudnessPenaltyCap)
		advice.Message = fmt.Sprintf(
			"integrated loudness %.1f LUFS is %.1f LU above the genre range; back off the limiter to recover punch",
			in.IntegratedLUFS, over)
	default:
		advice.Message = fmt.Sprintf("integrated loudness %.1f LUFS sits inside the genre range", in.IntegratedLUFS)
	}
	if in.TruePeakDb > truePeakCeilingDb {
		advice.TruePeakOver = true
		advice.Penalty += truePeakPenalty
		advice.Message += fmt.Sprintf(
			"; true peak %.2f dBTP exceeds the %.0f dBTP ceiling and risks inter-sample clipping on lossy encodes",
			in.TruePeakDb, truePeakCeilingDb)
	}
	return advice
}

func stereoAdvice(in StereoInput) StereoAdvice {
	advice := StereoAdvice{
		Correlation: in.Correlation,
		Width:       in.Width,
	}
	switch {
	case in.Correlation < phaseRiskCorrelation:
		advice.PhaseRisk = true
		advice.Penalty = phaseRiskPenalty
		advice.Message = fmt.Sprintf(
			"correlation %.2f signals phase-cancellation risk; check widener and layered-sample polarity, and verify the low end in mono",
			in.Correlation)
	case in.Width > excessiveWidth:
		advice.TooWide = true
		advice.Penalty = excessiveWidthPenalty
		advice.Message = fmt.Sprintf(
			"stereo width %.2f is excessive; the mix may collapse on mono club systems", in.Width)
	case in.Width < narrowWidth:
		advice.TooNarrow = true
		advice.Penalty = narrowWidthPenalty
		advice.Message = fmt.Sprintf(
			"stereo width %.2f is near-mono; widen pads, hats or reverb returns for space", in.Width)
	default:
		advice.Message = fmt.Sprintf("stereo image is healthy (correlation %.2f, width %.2f)", in.Correlation, in.Width)
	}
	return advice
}

func clampScore(s float64) float64 {
	return math.Min(100, math.Max(0, s))
}
