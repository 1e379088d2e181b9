// Package rhythm provides energy-based onset detection, inter-onset tempo
// estimation, and swing/groove statistics.
package rhythm

// OnsetParams controls energy-based onset picking.
type OnsetParams struct {
	WindowSize  int     `json:"window_size"`  // energy window in samples (default: 1024)
	HopSize     int     `json:"hop_size"`     // hop in samples (default: 512)
	Threshold   float64 `json:"threshold"`    // rise over trailing mean (default: 1.5)
	MinSpacing  float64 `json:"min_spacing"`  // minimum inter-onset distance, seconds (default: 0.05)
	HistorySize int     `json:"history_size"` // trailing-mean window, frames (default: 8)
}

// DetectOnsets finds transients by comparing each window's energy against a
// trailing local mean. Returns onset times in seconds; silence or input
// shorter than one window yields an empty slice.
func DetectOnsets(signal []float64, sampleRate int, params OnsetParams) []float64 {
	if params.WindowSize <= 0 {
		params.WindowSize = 1024
	}
	if params.HopSize <= 0 {
		params.HopSize = 512
	}
	if params.Threshold <= 0 {
		params.Threshold = 1.5
	}
	if params.MinSpacing <= 0 {
		params.MinSpacing = 0.05
	}
	if params.HistorySize <= 0 {
		params.HistorySize = 8
	}

	if sampleRate <= 0 || len(signal) < params.WindowSize {
		return []float64{}
	}

	numFrames := (len(signal)-params.WindowSize)/params.HopSize + 1
	energies := make([]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * params.HopSize
		sum := 0.0
		for i := start; i < start+params.WindowSize; i++ {
			sum += signal[i] * signal[i]
		}
		energies[t] = sum
	}

	onsets := []float64{}
	lastOnset := -params.MinSpacing
	for t := 1; t < numFrames; t++ {
		histStart := t - params.HistorySize
		if histStart < 0 {
			histStart = 0
		}
		mean := 0.0
		for h := histStart; h < t; h++ {
			mean += energies[h]
		}
		mean /= float64(t - histStart)

		// Noise floor keeps silence from triggering on rounding dust.
		if energies[t] < 1e-6 {
			continue
		}
		if energies[t] > mean*params.Threshold && energies[t] > energies[t-1] {
			onsetTime := float64(t*params.HopSize) / float64(sampleRate)
			if onsetTime-lastOnset >= params.MinSpacing {
				onsets = append(onsets, onsetTime)
				lastOnset = onsetTime
			}
		}
	}
	return onsets
}

// OnsetDensity returns onsets per second for a signal of the given
// duration.
func OnsetDensity(onsets []float64, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(len(onsets)) / duration
}
