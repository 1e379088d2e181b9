package spectral

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MFCC computes Mel-Frequency Cepstral Coefficients: a compact timbre
// fingerprint from a perceptually-warped log spectrum.
type MFCC struct {
	numCoefficients int
	numMelFilters   int
	sampleRate      int

	filterBank [][]float64
	dctMatrix  [][]float64
}

// MFCCParams contains parameters for MFCC computation
type MFCCParams struct {
	NumCoefficients int `json:"num_coefficients"` // Number of MFCC coefficients (default: 13)
	NumMelFilters   int `json:"num_mel_filters"`  // Number of mel filter bank filters (default: 26)
}

// MFCCResult holds per-coefficient statistics across all analysis frames.
// The stddev captures timbral stationarity: low for sustained tones, high
// for noisy or transient material.
type MFCCResult struct {
	Means   []float64 `json:"means"`
	Stddevs []float64 `json:"stddevs"`
}

// NewMFCC creates an MFCC computer with the default 13-coefficient,
// 26-filter configuration for the given FFT geometry.
func NewMFCC(sampleRate, fftSize int) *MFCC {
	return NewMFCCWithParams(sampleRate, fftSize, MFCCParams{})
}

// NewMFCCWithParams creates an MFCC computer with custom parameters.
func NewMFCCWithParams(sampleRate, fftSize int, params MFCCParams) *MFCC {
	if params.NumCoefficients <= 0 {
		params.NumCoefficients = 13
	}
	if params.NumMelFilters <= 0 {
		params.NumMelFilters = 26
	}

	m := &MFCC{
		numCoefficients: params.NumCoefficients,
		numMelFilters:   params.NumMelFilters,
		sampleRate:      sampleRate,
	}
	m.buildFilterBank(fftSize)
	m.buildDCTMatrix()
	return m
}

// hzToMel converts frequency to the mel scale.
func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// melToHz converts mel scale back to frequency.
func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// buildFilterBank creates triangular mel filters spanning 0..Nyquist.
func (m *MFCC) buildFilterBank(fftSize int) {
	bins := fftSize/2 + 1
	nyquist := float64(m.sampleRate) / 2.0

	lowMel := hzToMel(0)
	highMel := hzToMel(nyquist)

	// numFilters+2 equally spaced mel points define the triangle edges.
	melPoints := make([]float64, m.numMelFilters+2)
	for i := range melPoints {
		melPoints[i] = lowMel + (highMel-lowMel)*float64(i)/float64(m.numMelFilters+1)
	}

	binPoints := make([]int, len(melPoints))
	for i, mel := range melPoints {
		binPoints[i] = int(math.Floor((float64(fftSize) + 1) * melToHz(mel) / float64(m.sampleRate)))
		if binPoints[i] >= bins {
			binPoints[i] = bins - 1
		}
	}

	m.filterBank = make([][]float64, m.numMelFilters)
	for f := 0; f < m.numMelFilters; f++ {
		filter := make([]float64, bins)
		left, center, right := binPoints[f], binPoints[f+1], binPoints[f+2]

		for bin := left; bin < center; bin++ {
			if center > left {
				filter[bin] = float64(bin-left) / float64(center-left)
			}
		}
		for bin := center; bin <= right && bin < bins; bin++ {
			if right > center {
				filter[bin] = float64(right-bin) / float64(right-center)
			} else if bin == center {
				filter[bin] = 1.0
			}
		}
		m.filterBank[f] = filter
	}
}

// buildDCTMatrix creates the Type-II DCT matrix with orthonormal scaling.
func (m *MFCC) buildDCTMatrix() {
	m.dctMatrix = make([][]float64, m.numCoefficients)
	for k := 0; k < m.numCoefficients; k++ {
		m.dctMatrix[k] = make([]float64, m.numMelFilters)
		for n := 0; n < m.numMelFilters; n++ {
			m.dctMatrix[k][n] = math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(m.numMelFilters))
			if k == 0 {
				m.dctMatrix[k][n] *= math.Sqrt(1.0 / float64(m.numMelFilters))
			} else {
				m.dctMatrix[k][n] *= math.Sqrt(2.0 / float64(m.numMelFilters))
			}
		}
	}
}

// ComputeFrame calculates MFCC coefficients for one power spectrum frame.
func (m *MFCC) ComputeFrame(powerSpectrum []float64) []float64 {
	// Apply mel filter bank
	melSpectrum := make([]float64, m.numMelFilters)
	for f, filter := range m.filterBank {
		sum := 0.0
		for bin := 0; bin < len(filter) && bin < len(powerSpectrum); bin++ {
			sum += powerSpectrum[bin] * filter[bin]
		}
		melSpectrum[f] = sum
	}

	// Log with floor to avoid log(0)
	logMel := make([]float64, len(melSpectrum))
	for i, mel := range melSpectrum {
		if mel > 1e-10 {
			logMel[i] = math.Log(mel)
		} else {
			logMel[i] = math.Log(1e-10)
		}
	}

	// DCT-II
	coeffs := make([]float64, m.numCoefficients)
	for k := 0; k < m.numCoefficients; k++ {
		sum := 0.0
		for n := 0; n < len(logMel); n++ {
			sum += logMel[n] * m.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}
	return coeffs
}

// ComputeStats calculates per-coefficient mean and standard deviation
// across all frames of a spectrogram. Empty input yields zeroed vectors.
func (m *MFCC) ComputeStats(powerSpectra [][]float64) MFCCResult {
	result := MFCCResult{
		Means:   make([]float64, m.numCoefficients),
		Stddevs: make([]float64, m.numCoefficients),
	}
	if len(powerSpectra) == 0 {
		return result
	}

	// coefficient-major collection for gonum reductions
	series := make([][]float64, m.numCoefficients)
	for k := range series {
		series[k] = make([]float64, len(powerSpectra))
	}
	for t, spectrum := range powerSpectra {
		coeffs := m.ComputeFrame(spectrum)
		for k, c := range coeffs {
			series[k][t] = c
		}
	}

	for k := range series {
		result.Means[k] = stat.Mean(series[k], nil)
		if len(series[k]) > 1 {
			result.Stddevs[k] = stat.StdDev(series[k], nil)
		}
	}
	return result
}
