package spectral

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality for analysis frames.
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the FFT of a real signal using mjibson/go-dsp.
// Handles all sizes, including non-power-of-2.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// PowerSpectrum returns the one-sided power spectrum (size/2+1 bins) of a
// real frame.
func (f *FFT) PowerSpectrum(frame []float64) []float64 {
	if len(frame) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(frame)
	bins := len(frame)/2 + 1
	power := make([]float64, bins)
	for i := 0; i < bins && i < len(spectrum); i++ {
		re := real(spectrum[i])
		im := imag(spectrum[i])
		power[i] = re*re + im*im
	}
	return power
}

// MagnitudeSpectrum returns the one-sided magnitude spectrum of a real frame.
func (f *FFT) MagnitudeSpectrum(frame []float64) []float64 {
	power := f.PowerSpectrum(frame)
	for i, p := range power {
		power[i] = math.Sqrt(p)
	}
	return power
}

// BinFrequency returns the center frequency of an FFT bin.
func BinFrequency(bin, fftSize, sampleRate int) float64 {
	return float64(bin) * float64(sampleRate) / float64(fftSize)
}
