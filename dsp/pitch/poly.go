package pitch

import (
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/soniqlab/trackprint/audio"
	"github.com/soniqlab/trackprint/logging"
)

// Polyphonic transcription model geometry. The model consumes mono audio at
// its own sample rate and emits frame-indexed note activations for the 88
// piano keys starting at MIDI 21.
const (
	polyModelSampleRate = 22050
	polyModelFrameRate  = 86.13 // activation frames per second
	polyModelNumNotes   = 88
	polyModelLowestMidi = 21

	activationThreshold = 0.3
)

// ortInitOnce ensures ONNX Runtime is initialized only once per process.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// PolyphonicTranscriber wraps a pretrained ONNX note-transcription model.
// Construction can fail when the runtime or model is missing; callers are
// expected to check Available and fall back to the monophonic tracker.
type PolyphonicTranscriber struct {
	session   *ort.DynamicAdvancedSession
	modelPath string
	initErr   error
}

// NewPolyphonicTranscriber loads the transcription model from modelPath.
// It never returns a nil transcriber: a load failure is carried in the
// handle and reported through Available, so the caller owns one explicit
// fallback decision instead of scattered nil checks.
func NewPolyphonicTranscriber(modelPath string) *PolyphonicTranscriber {
	pt := &PolyphonicTranscriber{modelPath: modelPath}

	if _, err := os.Stat(modelPath); err != nil {
		pt.initErr = fmt.Errorf("transcription model not found at %s: %w", modelPath, err)
		return pt
	}

	ortInitOnce.Do(func() {
		if path := os.Getenv("ONNXRUNTIME_LIB_PATH"); path != "" {
			ort.SetSharedLibraryPath(path)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	if ortInitErr != nil {
		pt.initErr = fmt.Errorf("failed to initialize ONNX Runtime: %w", ortInitErr)
		return pt
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"audio"},
		[]string{"note_activations"},
		nil,
	)
	if err != nil {
		pt.initErr = fmt.Errorf("failed to create transcription session: %w", err)
		return pt
	}
	pt.session = session
	return pt
}

// Available reports whether the model loaded and can run.
func (pt *PolyphonicTranscriber) Available() bool {
	return pt.initErr == nil && pt.session != nil
}

// Err returns the load error, if any.
func (pt *PolyphonicTranscriber) Err() error {
	return pt.initErr
}

// Close releases the model session.
func (pt *PolyphonicTranscriber) Close() error {
	if pt.session != nil {
		pt.session.Destroy()
		pt.session = nil
	}
	return nil
}

// Detect runs the model over the buffer and maps its activations to the
// common note contract. Returns an error when the model is unavailable so
// the caller can fall back to the monophonic detector.
func (pt *PolyphonicTranscriber) Detect(buf *audio.Buffer, bpmHint float64) (Result, error) {
	if !pt.Available() {
		return Result{Notes: []DetectedNote{}}, fmt.Errorf("polyphonic model unavailable: %w", pt.initErr)
	}
	if buf == nil || buf.NumSamples() == 0 {
		return Result{Notes: []DetectedNote{}, BPM: bpmHint}, nil
	}

	mono := resampleLinear(buf.Mono(), buf.SampleRate, polyModelSampleRate)

	input := make([]float32, len(mono))
	for i, s := range mono {
		input[i] = float32(s)
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(input))), input)
	if err != nil {
		return Result{Notes: []DetectedNote{}}, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := pt.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return Result{Notes: []DetectedNote{}}, fmt.Errorf("transcription inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return Result{Notes: []DetectedNote{}}, fmt.Errorf("unexpected output tensor type")
	}

	shape := outTensor.GetShape()
	if len(shape) < 2 {
		return Result{Notes: []DetectedNote{}}, fmt.Errorf("unexpected output shape %v", shape)
	}
	numFrames := int(shape[len(shape)-2])
	numNotes := int(shape[len(shape)-1])
	activations := reshapeActivations(outTensor.GetData(), numFrames, numNotes)

	logging.Debug("polyphonic transcription complete", logging.Fields{
		"frames": numFrames,
		"notes":  numNotes,
	})

	result := NotesFromActivations(activations, polyModelFrameRate, activationThreshold)
	result.Duration = buf.Duration()
	result.BPM = bpmHint
	return result, nil
}

func reshapeActivations(data []float32, numFrames, numNotes int) [][]float32 {
	activations := make([][]float32, 0, numFrames)
	for f := 0; f < numFrames && (f+1)*numNotes <= len(data); f++ {
		activations = append(activations, data[f*numNotes:(f+1)*numNotes])
	}
	return activations
}

// NotesFromActivations converts frame-indexed note activations into note
// events: a note opens when its activation crosses the threshold and closes
// when it falls back under. Velocity is the peak activation scaled to MIDI
// (round(amplitude*127), clamped to 1-127); overall confidence is the mean
// note amplitude. Exported for testing without a model session.
func NotesFromActivations(activations [][]float32, frameRate, threshold float64) Result {
	result := Result{Notes: []DetectedNote{}}
	if len(activations) == 0 || frameRate <= 0 {
		return result
	}

	frameDur := 1.0 / frameRate
	numNotes := len(activations[0])

	type openNote struct {
		startFrame int
		peak       float64
		sum        float64
		count      int
	}
	open := make(map[int]*openNote)

	closeNote := func(key int, n *openNote, endFrame int) {
		midi := polyModelLowestMidi + key
		if midi < 0 || midi > 127 {
			return
		}
		amplitude := n.sum / float64(n.count)
		result.Notes = append(result.Notes, DetectedNote{
			Midi:       midi,
			Name:       MidiNoteName(midi),
			Frequency:  MidiToFrequency(midi),
			Start:      float64(n.startFrame) * frameDur,
			Duration:   float64(endFrame-n.startFrame) * frameDur,
			Velocity:   ClampVelocity(int(math.Round(n.peak * 127.0))),
			Confidence: math.Min(amplitude, 1.0),
		})
	}

	for f, frame := range activations {
		for key := 0; key < numNotes && key < len(frame); key++ {
			a := float64(frame[key])
			active := a >= threshold
			n, isOpen := open[key]
			switch {
			case active && !isOpen:
				open[key] = &openNote{startFrame: f, peak: a, sum: a, count: 1}
			case active && isOpen:
				n.sum += a
				n.count++
				if a > n.peak {
					n.peak = a
				}
			case !active && isOpen:
				closeNote(key, n, f)
				delete(open, key)
			}
		}
	}
	for key, n := range open {
		closeNote(key, n, len(activations))
	}

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

// resampleLinear converts a signal between sample rates by linear
// interpolation; sufficient for feeding the transcription model.
func resampleLinear(signal []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(signal) == 0 || fromRate <= 0 || toRate <= 0 {
		return signal
	}
	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(signal)) / ratio)
	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := pos - float64(idx)
		if idx+1 < len(signal) {
			out[i] = signal[idx]*(1-frac) + signal[idx+1]*frac
		} else {
			out[i] = signal[len(signal)-1]
		}
	}
	return out
}
