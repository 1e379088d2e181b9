package pitch

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
)

// YinParams contains parameters for the monophonic tracker.
type YinParams struct {
	FrameSize    int     `json:"frame_size"`    // analysis frame length (default: 2048)
	HopSize      int     `json:"hop_size"`      // hop between frames (default: 512)
	Threshold    float64 `json:"threshold"`     // YIN absolute threshold (default: 0.15)
	MinFrequency float64 `json:"min_frequency"` // lowest trackable F0 (default: 50)
	MaxFrequency float64 `json:"max_frequency"` // highest trackable F0 (default: 2000)
	SilenceRMS   float64 `json:"silence_rms"`   // frames below this are unvoiced (default: 0.005)
}

// YinTracker tracks a monophonic fundamental frequency over short frames
// using the YIN difference-function method and merges stable frames into
// note events.
type YinTracker struct {
	params     YinParams
	sampleRate int
}

// NewYinTracker creates a tracker with default parameters.
func NewYinTracker(sampleRate int) *YinTracker {
	return NewYinTrackerWithParams(sampleRate, YinParams{})
}

// NewYinTrackerWithParams creates a tracker with custom parameters.
func NewYinTrackerWithParams(sampleRate int, params YinParams) *YinTracker {
	if params.FrameSize <= 0 {
		params.FrameSize = 2048
	}
	if params.HopSize <= 0 {
		params.HopSize = 512
	}
	if params.Threshold <= 0 {
		params.Threshold = 0.15
	}
	if params.MinFrequency <= 0 {
		params.MinFrequency = 50.0
	}
	if params.MaxFrequency <= 0 {
		params.MaxFrequency = 2000.0
	}
	if params.SilenceRMS <= 0 {
		params.SilenceRMS = 0.005
	}
	return &YinTracker{params: params, sampleRate: sampleRate}
}

// frameEstimate is one voiced frame observation.
type frameEstimate struct {
	midi       int
	confidence float64
	rms        float64
	voiced     bool
}

// Detect analyzes the buffer and returns the detected note sequence.
// Silence yields an empty note list with confidence 0. A stable tone yields
// temporally contiguous, non-overlapping notes whose cumulative duration
// stays within the buffer duration.
func (yt *YinTracker) Detect(buf *audio.Buffer, bpmHint float64) Result {
	result := Result{Notes: []DetectedNote{}, BPM: bpmHint}
	if buf == nil {
		return result
	}
	result.Duration = buf.Duration()

	signal := buf.Mono()
	if len(signal) < yt.params.FrameSize {
		return result
	}

	numFrames := (len(signal)-yt.params.FrameSize)/yt.params.HopSize + 1
	estimates := make([]frameEstimate, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * yt.params.HopSize
		frame := signal[start : start+yt.params.FrameSize]
		estimates[t] = yt.analyzeFrame(frame)
	}

	result.Notes = yt.mergeFrames(estimates)
	sortNotes(result.Notes)

	if len(result.Notes) > 0 {
		sum := 0.0
		for _, n := range result.Notes {
			sum += n.Confidence
		}
		result.Confidence = sum / float64(len(result.Notes))
	}
	return result
}

// analyzeFrame runs one YIN pass: difference function, cumulative-mean
// normalization, absolute-threshold lag pick, parabolic refinement.
func (yt *YinTracker) analyzeFrame(frame []float64) frameEstimate {
	rms := audio.RMS(frame)
	if rms < yt.params.SilenceRMS {
		return frameEstimate{}
	}

	minLag := int(float64(yt.sampleRate) / yt.params.MaxFrequency)
	maxLag := int(float64(yt.sampleRate) / yt.params.MinFrequency)
	if maxLag >= len(frame)/2 {
		maxLag = len(frame)/2 - 1
	}
	if minLag < 2 || maxLag <= minLag {
		return frameEstimate{}
	}

	// Difference function
	diff := make([]float64, maxLag+1)
	for tau := minLag; tau <= maxLag; tau++ {
		sum := 0.0
		for i := 0; i+tau < len(frame); i++ {
			d := frame[i] - frame[i+tau]
			sum += d * d
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference
	cmndf := make([]float64, maxLag+1)
	cmndf[0] = 1.0
	runningSum := 0.0
	for tau := 1; tau <= maxLag; tau++ {
		runningSum += diff[tau]
		if runningSum > 0 {
			cmndf[tau] = diff[tau] * float64(tau) / runningSum
		} else {
			cmndf[tau] = 1.0
		}
	}

	// First lag under the absolute threshold; walk to its local minimum.
	bestTau := -1
	for tau := minLag; tau <= maxLag; tau++ {
		if cmndf[tau] < yt.params.Threshold {
			for tau+1 <= maxLag && cmndf[tau+1] < cmndf[tau] {
				tau++
			}
			bestTau = tau
			break
		}
	}
	if bestTau < 0 {
		// Fall back to the global minimum if it is convincing enough.
		minVal := math.Inf(1)
		for tau := minLag; tau <= maxLag; tau++ {
			if cmndf[tau] < minVal {
				minVal = cmndf[tau]
				bestTau = tau
			}
		}
		if minVal > 0.35 {
			return frameEstimate{rms: rms}
		}
	}

	refined := parabolicRefine(cmndf, bestTau, minLag, maxLag)
	frequency := float64(yt.sampleRate) / refined
	if frequency < yt.params.MinFrequency || frequency > yt.params.MaxFrequency {
		return frameEstimate{rms: rms}
	}

	confidence := 1.0 - cmndf[bestTau]
	if confidence < 0 {
		confidence = 0
	}
	return frameEstimate{
		midi:       FrequencyToMidi(frequency),
		confidence: confidence,
		rms:        rms,
		voiced:     true,
	}
}

// parabolicRefine interpolates the true minimum between lag samples.
func parabolicRefine(cmndf []float64, tau, minLag, maxLag int) float64 {
	if tau <= minLag || tau >= maxLag {
		return float64(tau)
	}
	alpha := cmndf[tau-1]
	beta := cmndf[tau]
	gamma := cmndf[tau+1]
	denom := alpha - 2*beta + gamma
	if denom == 0 {
		return float64(tau)
	}
	delta := 0.5 * (alpha - gamma) / denom
	if delta > 0.5 || delta < -0.5 {
		return float64(tau)
	}
	return float64(tau) + delta
}

// mergeFrames folds consecutive same-midi voiced frames into note events.
func (yt *YinTracker) mergeFrames(estimates []frameEstimate) []DetectedNote {
	notes := []DetectedNote{}
	hopDur := float64(yt.params.HopSize) / float64(yt.sampleRate)

	var current *DetectedNote
	confSum, confCount := 0.0, 0
	rmsPeak := 0.0

	flush := func() {
		if current == nil {
			return
		}
		if confCount > 0 {
			current.Confidence = confSum / float64(confCount)
		}
		current.Velocity = ClampVelocity(int(math.Round(rmsPeak * math.Sqrt2 * 127.0)))
		notes = append(notes, *current)
		current = nil
		confSum, confCount, rmsPeak = 0, 0, 0
	}

	for t, est := range estimates {
		start := float64(t) * hopDur
		if !est.voiced {
			flush()
			continue
		}
		if current != nil && current.Midi == est.midi {
			current.Duration = start + hopDur - current.Start
		} else {
			flush()
			current = &DetectedNote{
				Midi:      est.midi,
				Name:      MidiNoteName(est.midi),
				Frequency: MidiToFrequency(est.midi),
				Start:     start,
				Duration:  hopDur,
			}
		}
		confSum += est.confidence
		confCount++
		if est.rms > rmsPeak {
			rmsPeak = est.rms
		}
	}
	flush()
	return notes
}
