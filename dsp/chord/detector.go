package chord

import (
	"strings"

	"github.com/soniqlab/trackprint/audio"
)

// DetectorParams contains parameters for windowed chord detection.
type DetectorParams struct {
	WindowSeconds float64 `json:"window_seconds"` // analysis window (default: 2.0)
	HopSeconds    float64 `json:"hop_seconds"`    // hop between windows (default: 1.0)
	SilenceRMS    float64 `json:"silence_rms"`    // windows below this are skipped (default: 0.005)
	MinConfidence float64 `json:"min_confidence"` // discard weaker matches (default: 0.4)
}

// Segment is one merged time range labelled with a single chord.
type Segment struct {
	Start      float64 `json:"start"`      // seconds
	End        float64 `json:"end"`        // seconds
	Symbol     string  `json:"symbol"`     // e.g. "F#m7"
	Root       string  `json:"root"`       // e.g. "F#"
	Quality    string  `json:"quality"`    // e.g. "minor7"
	Confidence float64 `json:"confidence"` // averaged across merged windows
}

// Result is the output of DetectChords.
type Result struct {
	Segments    []Segment `json:"segments"`
	Progression string    `json:"progression"` // deduplicated symbols joined by " – "
	Confidence  float64   `json:"confidence"`  // mean segment confidence
	WindowCount int       `json:"window_count"`
}

// Detector performs windowed chroma template matching.
type Detector struct {
	params     DetectorParams
	sampleRate int
}

// NewDetector creates a chord detector with default parameters.
func NewDetector(sampleRate int) *Detector {
	return NewDetectorWithParams(sampleRate, DetectorParams{})
}

// NewDetectorWithParams creates a chord detector with custom parameters.
func NewDetectorWithParams(sampleRate int, params DetectorParams) *Detector {
	if params.WindowSeconds <= 0 {
		params.WindowSeconds = 2.0
	}
	if params.HopSeconds <= 0 {
		params.HopSeconds = 1.0
	}
	if params.SilenceRMS <= 0 {
		params.SilenceRMS = 0.005
	}
	if params.MinConfidence <= 0 {
		params.MinConfidence = 0.4
	}
	return &Detector{params: params, sampleRate: sampleRate}
}

// windowMatch is the best (root, quality) match for one analysis window.
type windowMatch struct {
	start      float64
	end        float64
	root       int
	template   Template
	confidence float64
	matched    bool
}

// Detect runs windowed detection over the buffer and merges adjacent
// windows that agree. Audio shorter than one window or entirely silent
// yields an empty result with confidence 0.
func (d *Detector) Detect(buf *audio.Buffer) Result {
	result := Result{Segments: []Segment{}}
	if buf == nil || d.sampleRate <= 0 {
		return result
	}

	signal := buf.Mono()
	windowSize := int(d.params.WindowSeconds * float64(d.sampleRate))
	hopSize := int(d.params.HopSeconds * float64(d.sampleRate))
	if windowSize <= 0 || hopSize <= 0 || len(signal) < windowSize {
		return result
	}

	var matches []windowMatch
	for start := 0; start+windowSize <= len(signal); start += hopSize {
		window := signal[start : start+windowSize]
		m := windowMatch{
			start: float64(start) / float64(d.sampleRate),
			end:   float64(start+windowSize) / float64(d.sampleRate),
		}
		if audio.RMS(window) >= d.params.SilenceRMS {
			m = d.matchWindow(window, m)
		}
		matches = append(matches, m)
		result.WindowCount++
	}

	result.Segments = mergeMatches(matches)
	result.Progression = progressionString(result.Segments)

	if len(result.Segments) > 0 {
		sum := 0.0
		for _, s := range result.Segments {
			sum += s.Confidence
		}
		result.Confidence = sum / float64(len(result.Segments))
	}
	return result
}

// matchWindow scores every (quality, root) template against the window's
// chroma. Cosine similarity, minus a small priority penalty so near-ties
// resolve to the simpler quality.
func (d *Detector) matchWindow(window []float64, m windowMatch) windowMatch {
	chroma := ChromaVector(window, d.sampleRate)

	bestScore := 0.0
	for idx, template := range qualityTemplates {
		penalty := float64(idx) * priorityPenalty
		for root := 0; root < 12; root++ {
			score := cosineSimilarity(chroma, rotatePattern(template.Pattern, root)) - penalty
			if score > bestScore {
				bestScore = score
				m.root = root
				m.template = template
				m.matched = true
			}
		}
	}

	m.confidence = bestScore
	if m.confidence < d.params.MinConfidence {
		m.matched = false
	}
	return m
}

// mergeMatches folds consecutive windows with identical (root, quality)
// into one segment, averaging confidence. No two consecutive segments share
// a chord symbol.
func mergeMatches(matches []windowMatch) []Segment {
	segments := []Segment{}
	var current *Segment
	confSum, confCount := 0.0, 0

	flush := func() {
		if current == nil {
			return
		}
		if confCount > 0 {
			current.Confidence = confSum / float64(confCount)
		}
		segments = append(segments, *current)
		current = nil
		confSum, confCount = 0, 0
	}

	for _, m := range matches {
		if !m.matched {
			flush()
			continue
		}
		symbol := rootNames[m.root] + m.template.Suffix
		if current != nil && current.Symbol == symbol {
			current.End = m.end
		} else {
			flush()
			current = &Segment{
				Start:   m.start,
				End:     m.end,
				Symbol:  symbol,
				Root:    rootNames[m.root],
				Quality: m.template.Name,
			}
		}
		confSum += m.confidence
		confCount++
	}
	flush()
	return segments
}

// progressionString joins segment symbols with " – ", collapsing
// consecutive repeats.
func progressionString(segments []Segment) string {
	var symbols []string
	for _, s := range segments {
		if len(symbols) == 0 || symbols[len(symbols)-1] != s.Symbol {
			symbols = append(symbols, s.Symbol)
		}
	}
	return strings.Join(symbols, " – ")
}
