// Package loudness implements ITU-R BS.1770-4 loudness measurement:
// K-weighted, block-gated integrated loudness (LUFS), a short-term loudness
// series for timeline display, and linear-interpolated true peak (dBTP).
package loudness

import (
	"math"

	"github.com/soniqlab/trackprint/audio"
)

// SilenceLUFS is the absolute gate threshold and the value reported for
// material too short or too quiet to measure.
const SilenceLUFS = -70.0

// Measurement block geometry per BS.1770-4.
const (
	blockSeconds = 0.4 // momentary block length
	blockOverlap = 0.75

	shortTermSeconds = 3.0
	shortTermHop     = 1.0

	relativeGateLU = 10.0
)

// Result contains one loudness analysis of a whole buffer.
type Result struct {
	IntegratedLUFS float64   `json:"integrated_lufs"`
	TruePeakDb     float64   `json:"true_peak_db"`
	ShortTerm      []float64 `json:"short_term"` // 3s windows, 1s hop
}

// Meter measures loudness for buffers at one sample rate.
type Meter struct {
	sampleRate int
	weighting  kWeighting
}

// NewMeter creates a meter, choosing K-weighting coefficients for the given
// sample rate (nearest tabulated rate when unknown).
func NewMeter(sampleRate int) *Meter {
	return &Meter{
		sampleRate: sampleRate,
		weighting:  kWeightingFor(sampleRate),
	}
}

// channelWeight returns the BS.1770 summation weight for a channel index:
// 1.0 for L/R/C, 1.41 for surround channels.
func channelWeight(channel int) float64 {
	if channel >= 3 {
		return 1.41
	}
	return 1.0
}

// Measure computes integrated loudness, true peak and the short-term
// series. Fewer samples than one measurement block yields SilenceLUFS with
// an empty short-term series rather than dividing by zero.
func (m *Meter) Measure(buf *audio.Buffer) Result {
	result := Result{
		IntegratedLUFS: SilenceLUFS,
		TruePeakDb:     audio.LinearToDb(0),
	}
	if buf == nil || buf.NumChannels() == 0 {
		return result
	}

	result.TruePeakDb = m.truePeak(buf)

	blockSize := int(blockSeconds * float64(m.sampleRate))
	if blockSize <= 0 || buf.NumSamples() < blockSize {
		return result
	}

	// K-weight every channel once, then share across block and short-term
	// integration.
	weighted := make([][]float64, buf.NumChannels())
	for ch, samples := range buf.Channels {
		weighted[ch] = m.weighting.apply(samples)
	}

	result.IntegratedLUFS = m.integrated(weighted, blockSize)
	result.ShortTerm = m.shortTerm(weighted)
	return result
}

// blockLoudness converts a weighted per-channel mean-square sum into block
// loudness per BS.1770 eq. 2.
func blockLoudness(meanSquareSum float64) float64 {
	if meanSquareSum <= 0 {
		return SilenceLUFS
	}
	return -0.691 + 10.0*math.Log10(meanSquareSum)
}

// windowLoudness measures one [start,end) window across channels.
func windowLoudness(weighted [][]float64, start, end int) float64 {
	sum := 0.0
	for ch, samples := range weighted {
		if end > len(samples) {
			return SilenceLUFS
		}
		ms := 0.0
		for i := start; i < end; i++ {
			ms += samples[i] * samples[i]
		}
		sum += channelWeight(ch) * ms / float64(end-start)
	}
	return blockLoudness(sum)
}

// integrated applies the two-stage gate: discard blocks below the absolute
// -70 LUFS gate, then discard blocks more than 10 LU below the ungated
// mean, and integrate the remainder.
func (m *Meter) integrated(weighted [][]float64, blockSize int) float64 {
	hop := int(float64(blockSize) * (1.0 - blockOverlap))
	if hop <= 0 {
		hop = 1
	}
	numSamples := len(weighted[0])

	type block struct {
		loudness float64
		power    float64
	}
	var blocks []block

	for start := 0; start+blockSize <= numSamples; start += hop {
		sum := 0.0
		for ch, samples := range weighted {
			ms := 0.0
			for i := start; i < start+blockSize; i++ {
				ms += samples[i] * samples[i]
			}
			sum += channelWeight(ch) * ms / float64(blockSize)
		}
		l := blockLoudness(sum)
		if l > SilenceLUFS {
			blocks = append(blocks, block{loudness: l, power: sum})
		}
	}
	if len(blocks) == 0 {
		return SilenceLUFS
	}

	// Relative gate threshold from the absolute-gated mean power.
	meanPower := 0.0
	for _, b := range blocks {
		meanPower += b.power
	}
	meanPower /= float64(len(blocks))
	relativeThreshold := blockLoudness(meanPower) - relativeGateLU

	gatedPower := 0.0
	gatedCount := 0
	for _, b := range blocks {
		if b.loudness >= relativeThreshold {
			gatedPower += b.power
			gatedCount++
		}
	}
	if gatedCount == 0 {
		return SilenceLUFS
	}
	return blockLoudness(gatedPower / float64(gatedCount))
}

// shortTerm measures ungated 3-second windows on a 1-second hop.
func (m *Meter) shortTerm(weighted [][]float64) []float64 {
	windowSize := int(shortTermSeconds * float64(m.sampleRate))
	hop := int(shortTermHop * float64(m.sampleRate))
	numSamples := len(weighted[0])

	var series []float64
	for start := 0; start+windowSize <= numSamples; start += hop {
		series = append(series, windowLoudness(weighted, start, start+windowSize))
	}
	return series
}

// truePeak estimates inter-sample peaks by 4x linear-interpolated
// oversampling of the raw (non-weighted) signal.
func (m *Meter) truePeak(buf *audio.Buffer) float64 {
	const oversample = 4

	peak := 0.0
	for _, samples := range buf.Channels {
		for i := 0; i < len(samples); i++ {
			if a := math.Abs(samples[i]); a > peak {
				peak = a
			}
			if i+1 < len(samples) {
				for k := 1; k < oversample; k++ {
					t := float64(k) / float64(oversample)
					v := samples[i] + t*(samples[i+1]-samples[i])
					if a := math.Abs(v); a > peak {
						peak = a
					}
				}
			}
		}
	}
	return audio.LinearToDb(peak)
}
