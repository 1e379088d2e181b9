package spectral

import "math"

// Goertzel evaluates the signal power at a single frequency without a full
// FFT. Used where only a handful of frequencies matter: chroma extraction
// across pitch classes and harmonic-energy measurement.
func Goertzel(signal []float64, frequency float64, sampleRate int) float64 {
	if len(signal) == 0 || sampleRate <= 0 || frequency <= 0 {
		return 0
	}

	omega := 2.0 * math.Pi * frequency / float64(sampleRate)
	coeff := 2.0 * math.Cos(omega)

	s0, s1, s2 := 0.0, 0.0, 0.0
	for _, x := range signal {
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		return 0
	}
	return power / float64(len(signal))
}
