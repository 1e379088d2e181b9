// Package blueprint is the composition root: it orchestrates feature
// extraction, the detectors, Mix Doctor scoring, and arrangement heuristics
// into one ReconstructionBlueprint, and defines the provider and enrichment
// boundaries around that result.
package blueprint

import (
	"context"
	"sync"
	"time"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/dsp/chord"
	"github.com/soniqlab/trackprint/dsp/detect"
	"github.com/soniqlab/trackprint/dsp/pitch"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/logging"
	"github.com/soniqlab/trackprint/mixdoctor"
)

// Options configures one analysis run.
type Options struct {
	// GenreID selects the Mix Doctor calibration profile. Unknown or
	// empty ids fall back to the default profile.
	GenreID string

	// BPMHint seeds tempo estimation when onsets are too sparse. Zero
	// means no hint.
	BPMHint float64

	// PolyphonicModelPath points at an ONNX transcription model. When
	// empty or the model fails to load, pitch detection falls back to
	// the monophonic tracker.
	PolyphonicModelPath string

	// SkipMixReport leaves MixReport nil; callers that only want
	// telemetry can spare the scoring pass.
	SkipMixReport bool
}

// Assemble runs the full local analysis over an immutable decoded buffer.
// Chord and pitch detection run as concurrent goroutines off the same
// buffer and join before assembly; cancellation is checked between stages,
// never inside DSP loops. The only error returned is the context's.
func Assemble(ctx context.Context, buf *audio.Buffer, opts Options) (*ReconstructionBlueprint, error) {
	started := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	features := ExtractFeatures(buf, opts.BPMHint)

	// Chord and pitch analysis are independent of the feature pass and
	// of each other; they only read the buffer.
	var (
		wg     sync.WaitGroup
		chords chord.Result
		notes  pitch.Result
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		chords = chord.NewDetector(buf.SampleRate).Detect(buf)
	}()
	go func() {
		defer wg.Done()
		notes = detectPitch(buf, features.BPM, opts.PolyphonicModelPath)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acid := detect.NewAcidDetector(buf.SampleRate).Detect(buf, features.BPM)
	kick := detect.NewKickDistortionDetector(buf.SampleRate).Detect(buf, features.BPM)
	bass := detect.NewBassDecayDetector(buf.SampleRate).Detect(buf, features.BPM)
	swing := rhythm.AnalyzeSwing(features.Onsets)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bp := &ReconstructionBlueprint{
		Telemetry: Telemetry{
			BPM:           features.BPM,
			BPMConfidence: features.BPMConfidence,
			Key: Key{
				Root:       features.KeyRoot,
				Scale:      features.KeyScale,
				Confidence: features.KeyConfidence,
			},
			Swing:            swing,
			Acid:             acid,
			KickDistortion:   kick,
			BassDecay:        bass,
			Chords:           chords,
			Pitch:            notes,
			Bands:            features.Bands,
			SpectralCentroid: features.SpectralCentroid,
			CrestFactorDb:    features.CrestFactorDb,
		},
		GrooveDescription: describeGroove(swing, features.BPM),
		Meta: Meta{
			Provider:   "local",
			SampleRate: features.SampleRate,
			Channels:   features.Channels,
			Duration:   features.Duration,
			GenreID:    opts.GenreID,
		},
	}
	if features.Loudness != nil {
		bp.Telemetry.IntegratedLUFS = features.Loudness.IntegratedLUFS
		bp.Telemetry.TruePeakDb = features.Loudness.TruePeakDb
		bp.Sections = arrangeSections(features.Loudness.ShortTerm, features.Duration)
	}
	bp.Telemetry.Stereo = features.Stereo

	bp.Instrumentation = suggestInstrumentation(features, acid, kick, bass)
	bp.FXChain = suggestFX(features, acid, swing)
	bp.SecretSauce = secretSauce(features, acid, bass, swing)

	if !opts.SkipMixReport {
		bp.MixReport = scoreMix(features, opts.GenreID)
		bp.Meta.GenreID = bp.MixReport.GenreID
	}

	bp.Meta.ElapsedMs = time.Since(started).Milliseconds()
	logging.Debug("blueprint assembled", logging.Fields{
		"duration_s": features.Duration,
		"bpm":        features.BPM,
		"key":        features.KeyRoot + " " + features.KeyScale,
		"elapsed_ms": bp.Meta.ElapsedMs,
	})
	return bp, nil
}

// detectPitch prefers the polyphonic transcriber when a model is configured
// and loadable, and otherwise falls back to the monophonic tracker. A model
// that loads but fails at inference also falls back.
func detectPitch(buf *audio.Buffer, bpm float64, modelPath string) pitch.Result {
	if modelPath != "" {
		pt := pitch.NewPolyphonicTranscriber(modelPath)
		defer pt.Close()
		if pt.Available() {
			res, err := pt.Detect(buf, bpm)
			if err == nil {
				return res
			}
			logging.Warn("polyphonic transcription failed, falling back", logging.Fields{
				"error": err.Error(),
			})
		}
	}
	return pitch.NewYinTracker(buf.SampleRate).Detect(buf, bpm)
}

func scoreMix(f *AudioFeatures, genreID string) *mixdoctor.Report {
	in := mixdoctor.Input{
		Bands:         f.Bands,
		CrestFactorDb: f.CrestFactorDb,
	}
	if f.Loudness != nil {
		in.Loudness = &mixdoctor.LoudnessInput{
			IntegratedLUFS: f.Loudness.IntegratedLUFS,
			TruePeakDb:     f.Loudness.TruePeakDb,
		}
	}
	if f.Stereo != nil {
		in.Stereo = &mixdoctor.StereoInput{
			Correlation: f.Stereo.Correlation,
			Width:       f.Stereo.Width,
		}
	}
	return mixdoctor.NewDoctor(genreID).Diagnose(in)
}
