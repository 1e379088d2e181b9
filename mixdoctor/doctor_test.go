package mixdoctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniqlab/trackprint/dsp/spectral"
	"github.com/soniqlab/trackprint/genre"
)

// optimalInput builds an input sitting exactly on every target of the
// profile, with loudness and stereo inside range.
func optimalInput(p genre.Profile) Input {
	var bands []spectral.BandEnergy
	for _, band := range spectral.StandardBands {
		target := p.Bands[band.Name]
		bands = append(bands, spectral.BandEnergy{
			Band:      band,
			AverageDb: target.OptimalDb,
			PeakDb:    target.OptimalDb,
			Dominance: spectral.ClassifyDominance(target.OptimalDb),
		})
	}
	return Input{
		Bands:         bands,
		CrestFactorDb: (p.CrestFactor.Min + p.CrestFactor.Max) / 2,
		Loudness: &LoudnessInput{
			IntegratedLUFS: (p.LUFS.Min + p.LUFS.Max) / 2,
			TruePeakDb:     -1.5,
		},
		Stereo: &StereoInput{Correlation: 0.7, Width: 0.5},
	}
}

func TestExactOptimalScoresExactly100(t *testing.T) {
	d := NewDoctor("techno")
	report := d.Diagnose(optimalInput(d.Profile()))

	assert.Equal(t, 100.0, report.OverallScore)
	require.Len(t, report.Bands, 7)
	for _, advice := range report.Bands {
		assert.Equal(t, IssueOptimal, advice.Issue, advice.Band)
		assert.Equal(t, 100.0, advice.Score, advice.Band)
		assert.Equal(t, 0.0, advice.DeviationDb, advice.Band)
	}
	assert.Equal(t, IssueOptimal, report.Dynamics.Issue)
	assert.Equal(t, 0.0, report.Dynamics.Penalty)
}

func TestBandScoreMonotonicInDeviation(t *testing.T) {
	d := NewDoctor("techno")

	near := optimalInput(d.Profile())
	near.Bands[0].AverageDb += 2
	far := optimalInput(d.Profile())
	far.Bands[0].AverageDb += 5

	rNear := d.Diagnose(near)
	rFar := d.Diagnose(far)

	assert.Less(t, rNear.Bands[0].Score, 100.0)
	assert.Less(t, rFar.Bands[0].Score, rNear.Bands[0].Score)
	assert.Less(t, rFar.OverallScore, rNear.OverallScore)
	assert.Less(t, rNear.OverallScore, 100.0)
}

func TestBandScoreSlope(t *testing.T) {
	d := NewDoctor("techno")
	in := optimalInput(d.Profile())
	in.Bands[2].AverageDb += 3

	report := d.Diagnose(in)
	// 100 - 3*6.66 = 80.02
	assert.InDelta(t, 80.02, report.Bands[2].Score, 1e-9)
}

func TestBandIssueClassification(t *testing.T) {
	d := NewDoctor("techno")
	p := d.Profile()

	loud := optimalInput(p)
	loud.Bands[0].AverageDb = p.Bands[loud.Bands[0].Band.Name].MaxDb + 1
	assert.Equal(t, IssueTooLoud, d.Diagnose(loud).Bands[0].Issue)

	quiet := optimalInput(p)
	quiet.Bands[0].AverageDb = p.Bands[quiet.Bands[0].Band.Name].MinDb - 1
	assert.Equal(t, IssueTooQuiet, d.Diagnose(quiet).Bands[0].Issue)
}

func TestDynamicsPenaltyCapped(t *testing.T) {
	d := NewDoctor("techno")
	in := optimalInput(d.Profile())
	in.CrestFactorDb = d.Profile().CrestFactor.Min - 20

	report := d.Diagnose(in)
	assert.Equal(t, IssueTooCompressed, report.Dynamics.Issue)
	assert.Equal(t, 15.0, report.Dynamics.Penalty)
	assert.Equal(t, 85.0, report.OverallScore)
}

func TestTruePeakPenalty(t *testing.T) {
	d := NewDoctor("techno")
	in := optimalInput(d.Profile())
	in.Loudness.TruePeakDb = -0.2

	report := d.Diagnose(in)
	require.NotNil(t, report.Loudness)
	assert.True(t, report.Loudness.TruePeakOver)
	assert.Equal(t, truePeakPenalty, report.Loudness.Penalty)
	assert.Equal(t, 95.0, report.OverallScore)
}

func TestStereoPenalties(t *testing.T) {
	d := NewDoctor("techno")

	phase := optimalInput(d.Profile())
	phase.Stereo = &StereoInput{Correlation: 0.1, Width: 0.5}
	r := d.Diagnose(phase)
	require.NotNil(t, r.Stereo)
	assert.True(t, r.Stereo.PhaseRisk)
	assert.Equal(t, 5.0, r.Stereo.Penalty)

	wide := optimalInput(d.Profile())
	wide.Stereo = &StereoInput{Correlation: 0.7, Width: 0.95}
	r = d.Diagnose(wide)
	assert.True(t, r.Stereo.TooWide)
	assert.Equal(t, 3.0, r.Stereo.Penalty)

	narrow := optimalInput(d.Profile())
	narrow.Stereo = &StereoInput{Correlation: 0.9, Width: 0.05}
	r = d.Diagnose(narrow)
	assert.True(t, r.Stereo.TooNarrow)
	assert.Equal(t, 2.0, r.Stereo.Penalty)
}

func TestOptionalSectionsOmitted(t *testing.T) {
	d := NewDoctor("techno")
	in := optimalInput(d.Profile())
	in.Loudness = nil
	in.Stereo = nil

	report := d.Diagnose(in)
	assert.Nil(t, report.Loudness)
	assert.Nil(t, report.Stereo)
	assert.Equal(t, 100.0, report.OverallScore)
}

func TestUnknownGenreFallsBackToDefault(t *testing.T) {
	d := NewDoctor("not-a-genre")
	assert.Equal(t, genre.DefaultID, d.Profile().ID)

	report := d.Diagnose(optimalInput(d.Profile()))
	assert.Equal(t, genre.DefaultID, report.GenreID)
}

func TestScoreClampedToZero(t *testing.T) {
	d := NewDoctor("techno")
	in := optimalInput(d.Profile())
	for i := range in.Bands {
		in.Bands[i].AverageDb += 40
	}
	in.CrestFactorDb = 0.1
	in.Loudness.IntegratedLUFS = 0
	in.Loudness.TruePeakDb = 0

	report := d.Diagnose(in)
	assert.Equal(t, 0.0, report.OverallScore)
}
