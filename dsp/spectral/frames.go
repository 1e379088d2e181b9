package spectral

// Default analysis frame geometry shared by the feature extraction pipeline.
const (
	DefaultFrameSize = 2048
	DefaultHopSize   = 1024
)

// Framer slices a signal into fixed-size, Hann-windowed analysis frames and
// computes their power spectra.
type Framer struct {
	FrameSize int
	HopSize   int

	fft    *FFT
	window *Hann
}

// NewFramer creates a Framer with the default 2048/1024 geometry.
func NewFramer() *Framer {
	return NewFramerWithSize(DefaultFrameSize, DefaultHopSize)
}

// NewFramerWithSize creates a Framer with a custom frame size and hop.
func NewFramerWithSize(frameSize, hopSize int) *Framer {
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	if hopSize <= 0 {
		hopSize = frameSize / 2
	}
	return &Framer{
		FrameSize: frameSize,
		HopSize:   hopSize,
		fft:       NewFFT(),
		window:    NewHann(frameSize),
	}
}

// NumFrames returns the number of frames the signal yields. Signals shorter
// than one frame still yield a single zero-padded frame.
func (fr *Framer) NumFrames(signalLen int) int {
	if signalLen <= 0 {
		return 0
	}
	if signalLen < fr.FrameSize {
		return 1
	}
	return (signalLen-fr.FrameSize)/fr.HopSize + 1
}

// Frame returns the idx-th windowed frame, zero-padded at the signal tail.
func (fr *Framer) Frame(signal []float64, idx int) []float64 {
	frame := make([]float64, fr.FrameSize)
	start := idx * fr.HopSize
	for i := 0; i < fr.FrameSize; i++ {
		if start+i < len(signal) {
			frame[i] = signal[start+i]
		}
	}
	return fr.window.Apply(frame)
}

// PowerSpectra computes the one-sided power spectrum of every frame.
// Returns an empty matrix for an empty signal, never an error.
func (fr *Framer) PowerSpectra(signal []float64) [][]float64 {
	numFrames := fr.NumFrames(len(signal))
	spectra := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		spectra[t] = fr.fft.PowerSpectrum(fr.Frame(signal, t))
	}
	return spectra
}

// FrameEnergies computes the total power per frame, for onset and silence
// decisions that don't need the full spectrum.
func (fr *Framer) FrameEnergies(signal []float64) []float64 {
	numFrames := fr.NumFrames(len(signal))
	energies := make([]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * fr.HopSize
		sum := 0.0
		for i := 0; i < fr.FrameSize && start+i < len(signal); i++ {
			s := signal[start+i]
			sum += s * s
		}
		energies[t] = sum
	}
	return energies
}

// FrameTime returns the start time in seconds of the idx-th frame.
func (fr *Framer) FrameTime(idx, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(idx*fr.HopSize) / float64(sampleRate)
}
