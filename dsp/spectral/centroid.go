package spectral

// Centroid computes the energy-weighted mean frequency of a power spectrum.
// Returns 0 for a silent frame.
func Centroid(powerSpectrum []float64, fftSize, sampleRate int) float64 {
	weightedSum := 0.0
	totalEnergy := 0.0
	for bin, power := range powerSpectrum {
		freq := BinFrequency(bin, fftSize, sampleRate)
		weightedSum += freq * power
		totalEnergy += power
	}
	if totalEnergy <= 0 {
		return 0
	}
	return weightedSum / totalEnergy
}

// CentroidMean averages the per-frame centroid across a spectrogram,
// skipping silent frames so leading/trailing silence doesn't drag the mean
// toward zero.
func CentroidMean(powerSpectra [][]float64, fftSize, sampleRate int) float64 {
	sum := 0.0
	count := 0
	for _, spectrum := range powerSpectra {
		c := Centroid(spectrum, fftSize, sampleRate)
		if c > 0 {
			sum += c
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
