package blueprint

import (
	"fmt"
	"math"

	"github.com/soniqlab/trackprint/dsp/detect"
	"github.com/soniqlab/trackprint/dsp/loudness"
	"github.com/soniqlab/trackprint/dsp/rhythm"
	"github.com/soniqlab/trackprint/dsp/spectral"
)

// sectionLevel buckets a short-term loudness value relative to the track's
// own gated mean.
type sectionLevel int

const (
	levelQuiet sectionLevel = iota
	levelMedium
	levelLoud
)

// arrangeSections derives arrangement regions from the short-term loudness
// contour: each 1-second point is bucketed as quiet, medium or loud
// relative to the track mean, runs of equal level are merged, and the runs
// are named by position and level. Tracks shorter than one short-term
// window get a single full-length section.
func arrangeSections(shortTerm []float64, duration float64) []Section {
	if len(shortTerm) == 0 {
		return []Section{{Name: "Full Track", Start: 0, End: duration, LoudnessLUFS: loudness.SilenceLUFS}}
	}

	mean := audibleMean(shortTerm)
	levels := make([]sectionLevel, len(shortTerm))
	for i, st := range shortTerm {
		switch {
		case st < mean-4:
			levels[i] = levelQuiet
		case st > mean+1.5:
			levels[i] = levelLoud
		default:
			levels[i] = levelMedium
		}
	}

	// Short-term points are 3 s windows on a 1 s hop; point i covers
	// roughly [i, i+3) seconds. Section boundaries snap to the hop grid.
	type run struct {
		level      sectionLevel
		start, end int // point indices, end exclusive
	}
	var runs []run
	runStart := 0
	for i := 1; i <= len(levels); i++ {
		if i < len(levels) && levels[i] == levels[runStart] {
			continue
		}
		runs = append(runs, run{level: levels[runStart], start: runStart, end: i})
		runStart = i
	}

	sections := make([]Section, len(runs))
	dropCount := 0
	for i, r := range runs {
		end := float64(r.end)
		if i == len(runs)-1 {
			end = duration
		}
		sections[i] = Section{
			Start:        float64(r.start),
			End:          end,
			LoudnessLUFS: meanOf(shortTerm[r.start:r.end]),
		}
		// Quiet runs are intro, outro or breakdown by position; loud
		// runs are drops; a medium run right before a drop is a build.
		switch {
		case r.level == levelQuiet && i == 0:
			sections[i].Name = "Intro"
		case r.level == levelQuiet && i == len(runs)-1:
			sections[i].Name = "Outro"
		case r.level == levelQuiet:
			sections[i].Name = "Breakdown"
		case r.level == levelLoud:
			dropCount++
			sections[i].Name = fmt.Sprintf("Drop %d", dropCount)
		case i == 0:
			sections[i].Name = "Intro"
		case i+1 < len(runs) && runs[i+1].level == levelLoud:
			sections[i].Name = "Build"
		default:
			sections[i].Name = "Groove"
		}
	}
	return sections
}

// audibleMean averages the short-term points above the silence floor so
// long silent tails don't drag section thresholds down.
func audibleMean(shortTerm []float64) float64 {
	sum, n := 0.0, 0
	for _, st := range shortTerm {
		if st > loudness.SilenceLUFS {
			sum += st
			n++
		}
	}
	if n == 0 {
		return loudness.SilenceLUFS
	}
	return sum / float64(n)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return loudness.SilenceLUFS
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// instrumentHints maps each spectral band to the element typically living
// there and a default device suggestion.
var instrumentHints = map[string][3]string{
	"Sub Bass":   {"Sub Bass", "deep sine-weighted low end", "analog-modeled sub synth"},
	"Low Bass":   {"Bassline", "rounded low-end body", "mono bass synth"},
	"Low Mids":   {"Pads / Chords", "warm sustained harmony", "poly synth with slow attack"},
	"Mids":       {"Lead / Vocal", "present midrange focus", "lead synth or vocal chain"},
	"Upper Mids": {"Percussion", "snappy transient detail", "drum rack / sampler"},
	"Highs":      {"Hats / Cymbals", "crisp high-frequency rhythm", "closed and open hats"},
	"Brilliance": {"Air / FX", "airy top-end shimmer", "noise sweeps, exciter"},
}

// suggestInstrumentation builds the instrumentation list from band
// dominance, then refines the low-end entries with detector findings. Only
// bands that are at least present contribute an element.
func suggestInstrumentation(f *AudioFeatures, acid detect.AcidResult, kick detect.KickDistortionResult, bass detect.BassDecayResult) []Instrument {
	var out []Instrument
	for _, be := range f.Bands {
		if be.Dominance != spectral.DominancePresent && be.Dominance != spectral.DominanceDominant {
			continue
		}
		hint, ok := instrumentHints[be.Band.Name]
		if !ok {
			continue
		}
		inst := Instrument{Element: hint[0], Timbre: hint[1], Device: hint[2]}
		switch be.Band.Name {
		case "Sub Bass":
			if kick.KickCount > 0 {
				inst.Element = "Kick"
				inst.Timbre = fmt.Sprintf("%s kick, ~%.0f Hz fundamental", kickCharacter(kick), kick.Fundamental)
				inst.Device = "kick sampler into saturation"
			}
		case "Low Bass":
			if acid.IsAcid {
				inst.Timbre = "resonant squelching acid line"
				inst.Device = "303-style monosynth with filter envelope"
			} else {
				inst.Timbre = fmt.Sprintf("%s bass, %s decay", inst.Timbre, bass.Class)
			}
		}
		out = append(out, inst)
	}
	return out
}

func kickCharacter(kick detect.KickDistortionResult) string {
	if kick.IsDistorted {
		return "distorted"
	}
	return "clean"
}

// suggestFX derives a short processing-chain hint list from the measured
// image, dynamics and detector findings. Artifact names are stable keys the
// enrichment layer matches on.
func suggestFX(f *AudioFeatures, acid detect.AcidResult, swing rhythm.SwingResult) []FXHint {
	var out []FXHint
	if f.CrestFactorDb > 0 && f.CrestFactorDb < 8 {
		out = append(out, FXHint{
			Artifact:       "Bus Compressor",
			Recommendation: "mix is already dense; use gentle glue settings only",
		})
	} else {
		out = append(out, FXHint{
			Artifact:       "Bus Compressor",
			Recommendation: "2-4 dB gain reduction on the drum bus for glue",
		})
	}
	if acid.IsAcid {
		out = append(out, FXHint{
			Artifact:       "Resonant Filter",
			Recommendation: "automate cutoff and resonance on the bassline; add light overdrive",
		})
	}
	if f.Stereo != nil && f.Stereo.Width < 0.15 {
		out = append(out, FXHint{
			Artifact:       "Stereo Widener",
			Recommendation: "widen pads and hats; keep everything below 150 Hz mono",
		})
	}
	if swing.Class != rhythm.GrooveStraight {
		out = append(out, FXHint{
			Artifact:       "Groove Template",
			Recommendation: fmt.Sprintf("apply ~%.0f%% swing to hats and percussion", swing.SwingPercent),
		})
	}
	out = append(out, FXHint{
		Artifact:       "Reverb Send",
		Recommendation: "short plate on percussion, longer hall on pads, pre-delay synced to tempo",
	})
	return out
}

// secretSauce condenses the most distinctive measurement into a single
// production recommendation.
func secretSauce(f *AudioFeatures, acid detect.AcidResult, bass detect.BassDecayResult, swing rhythm.SwingResult) string {
	switch {
	case acid.IsAcid:
		return fmt.Sprintf("the resonant filter movement (~%.1f Hz sweep rate) is the hook; exaggerate it on transitions", acid.CentroidOscillationHz)
	case swing.SwingPercent >= 10:
		return fmt.Sprintf("the %.0f%% swing drives the groove; lock every rhythmic element to the same template", swing.SwingPercent)
	case bass.Class == detect.DecayPunchy:
		return "the punchy sub decay leaves space for the kick; keep bass notes short and sidechain lightly"
	case f.SpectralCentroid > 4000:
		return "the bright top end is the signature; protect it by keeping the low mids carved out"
	default:
		return fmt.Sprintf("the %s low end carries the track; tune the kick to the root and layer sparingly", bass.Class)
	}
}

// describeGroove renders the measured swing statistics as prose. Enrichment
// providers typically replace this.
func describeGroove(swing rhythm.SwingResult, bpm float64) string {
	rounded := math.Round(bpm)
	switch swing.Class {
	case rhythm.GrooveShuffle:
		return fmt.Sprintf("%.0f BPM shuffle with %.0f%% swing", rounded, swing.SwingPercent)
	case rhythm.GrooveHeavySwing:
		return fmt.Sprintf("%.0f BPM with heavy %.0f%% swing", rounded, swing.SwingPercent)
	case rhythm.GrooveSlightSwing:
		return fmt.Sprintf("%.0f BPM with a light %.0f%% swing", rounded, swing.SwingPercent)
	default:
		return fmt.Sprintf("straight %.0f BPM grid", rounded)
	}
}
