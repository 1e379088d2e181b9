package loudness

// biquad is a direct-form-I second-order IIR filter section.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// process filters a signal through the section, returning a new slice.
func (bq *biquad) process(signal []float64) []float64 {
	out := make([]float64, len(signal))
	var x1, x2, y1, y2 float64
	for i, x := range signal {
		y := bq.b0*x + bq.b1*x1 + bq.b2*x2 - bq.a1*y1 - bq.a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		out[i] = y
	}
	return out
}

// kWeighting is the two-stage BS.1770-4 pre-filter chain: a high-shelf
// boost modeling the acoustic effect of the head, followed by the RLB
// revised low-frequency B-curve high-pass.
type kWeighting struct {
	shelf biquad
	rlb   biquad
}

// kWeightingCoefficients holds the tabulated filter stages per sample rate.
// ITU-R BS.1770-4 specifies the 48 kHz set; the 44.1 kHz set is the
// standard recomputation of the same analog prototypes.
var kWeightingCoefficients = map[int]kWeighting{
	48000: {
		shelf: biquad{
			b0: 1.53512485958697, b1: -2.69169618940638, b2: 1.19839281085285,
			a1: -1.69065929318241, a2: 0.73248077421585,
		},
		rlb: biquad{
			b0: 1.0, b1: -2.0, b2: 1.0,
			a1: -1.99004745483398, a2: 0.99007225036621,
		},
	},
	44100: {
		shelf: biquad{
			b0: 1.53084123005035, b1: -2.65097999515473, b2: 1.16907907992159,
			a1: -1.66365511325602, a2: 0.71259542807323,
		},
		rlb: biquad{
			b0: 1.0, b1: -2.0, b2: 1.0,
			a1: -1.98916967362980, a2: 0.98919903578704,
		},
	},
}

// kWeightingFor returns the filter chain for a sample rate, falling back to
// the nearest tabulated rate when the exact rate is not known.
func kWeightingFor(sampleRate int) kWeighting {
	if kw, ok := kWeightingCoefficients[sampleRate]; ok {
		return kw
	}

	nearest := 48000
	bestDiff := -1
	for rate := range kWeightingCoefficients {
		diff := sampleRate - rate
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			nearest = rate
		}
	}
	return kWeightingCoefficients[nearest]
}

// apply runs a channel through both filter stages.
func (kw kWeighting) apply(channel []float64) []float64 {
	return kw.rlb.process(kw.shelf.process(channel))
}
