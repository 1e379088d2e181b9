package spectral

import "math"

// Dominance classifies how strongly a band contributes to the mix,
// derived from its average dB level. Monotonic: higher level never maps to
// a lower class.
type Dominance string

const (
	DominanceAbsent   Dominance = "absent"
	DominanceWeak     Dominance = "weak"
	DominancePresent  Dominance = "present"
	DominanceDominant Dominance = "dominant"
)

// Dominance thresholds on average band level (dB).
const (
	dominanceWeakDb     = -50.0
	dominancePresentDb  = -35.0
	dominanceDominantDb = -20.0
)

// dbFloor keeps log conversion finite for silent bands.
const dbFloor = -100.0

// Band is a fixed named frequency range.
type Band struct {
	Name   string  `json:"name"`
	LowHz  float64 `json:"low_hz"`
	HighHz float64 `json:"high_hz"`
}

// StandardBands partitions 20 Hz - 20 kHz into the seven bands every
// profile and report in this module speaks in. No gaps, no overlaps.
var StandardBands = []Band{
	{Name: "Sub Bass", LowHz: 20, HighHz: 80},
	{Name: "Low Bass", LowHz: 80, HighHz: 250},
	{Name: "Low Mids", LowHz: 250, HighHz: 500},
	{Name: "Mids", LowHz: 500, HighHz: 2000},
	{Name: "Upper Mids", LowHz: 2000, HighHz: 5000},
	{Name: "Highs", LowHz: 5000, HighHz: 10000},
	{Name: "Brilliance", LowHz: 10000, HighHz: 20000},
}

// BandEnergy is the measured level of one band across a whole signal.
type BandEnergy struct {
	Band      Band      `json:"band"`
	AverageDb float64   `json:"average_db"`
	PeakDb    float64   `json:"peak_db"`
	Dominance Dominance `json:"dominance"`
}

// ClassifyDominance maps an average band level to its dominance class.
func ClassifyDominance(averageDb float64) Dominance {
	switch {
	case averageDb >= dominanceDominantDb:
		return DominanceDominant
	case averageDb >= dominancePresentDb:
		return DominancePresent
	case averageDb >= dominanceWeakDb:
		return DominanceWeak
	default:
		return DominanceAbsent
	}
}

// BandAnalyzer integrates framed power spectra into per-band energies.
type BandAnalyzer struct {
	bands      []Band
	sampleRate int
	fftSize    int
}

// NewBandAnalyzer creates an analyzer over the standard seven bands.
func NewBandAnalyzer(sampleRate, fftSize int) *BandAnalyzer {
	return &BandAnalyzer{
		bands:      StandardBands,
		sampleRate: sampleRate,
		fftSize:    fftSize,
	}
}

// Analyze integrates each frame's power spectrum over every band's bin
// range and reduces to average/peak dB with dominance. Silence yields
// finite levels at the dB floor.
func (ba *BandAnalyzer) Analyze(powerSpectra [][]float64) []BandEnergy {
	results := make([]BandEnergy, len(ba.bands))
	for i, band := range ba.bands {
		results[i] = ba.analyzeBand(band, powerSpectra)
	}
	return results
}

func (ba *BandAnalyzer) analyzeBand(band Band, powerSpectra [][]float64) BandEnergy {
	be := BandEnergy{Band: band, AverageDb: dbFloor, PeakDb: dbFloor}
	if len(powerSpectra) == 0 {
		be.Dominance = ClassifyDominance(be.AverageDb)
		return be
	}

	lowBin, highBin := ba.binRange(band)

	sumDb := 0.0
	peakDb := dbFloor
	for _, spectrum := range powerSpectra {
		framePower := 0.0
		for bin := lowBin; bin <= highBin && bin < len(spectrum); bin++ {
			framePower += spectrum[bin]
		}
		// Normalize by frame size so levels are comparable across FFT
		// geometries, then amplitude dB.
		frameDb := powerToDb(framePower / float64(ba.fftSize))
		sumDb += frameDb
		if frameDb > peakDb {
			peakDb = frameDb
		}
	}

	be.AverageDb = sumDb / float64(len(powerSpectra))
	be.PeakDb = peakDb
	be.Dominance = ClassifyDominance(be.AverageDb)
	return be
}

func (ba *BandAnalyzer) binRange(band Band) (int, int) {
	binWidth := float64(ba.sampleRate) / float64(ba.fftSize)
	lowBin := int(math.Ceil(band.LowHz / binWidth))
	highBin := int(math.Floor(band.HighHz / binWidth))
	if lowBin < 0 {
		lowBin = 0
	}
	maxBin := ba.fftSize / 2
	if highBin > maxBin {
		highBin = maxBin
	}
	return lowBin, highBin
}

// powerToDb converts a power value to dB with a floor to avoid log(0).
func powerToDb(power float64) float64 {
	if power <= 1e-10 {
		return dbFloor
	}
	return 10.0 * math.Log10(power)
}
