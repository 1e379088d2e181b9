package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestStandardBandsPartition(t *testing.T) {
	require.Len(t, StandardBands, 7)
	assert.Equal(t, 20.0, StandardBands[0].LowHz)
	assert.Equal(t, 20000.0, StandardBands[len(StandardBands)-1].HighHz)
	for i := 1; i < len(StandardBands); i++ {
		assert.Equal(t, StandardBands[i-1].HighHz, StandardBands[i].LowHz,
			"bands must tile with no gap or overlap at %s", StandardBands[i].Name)
	}
}

func TestDominanceMonotonic(t *testing.T) {
	assert.Equal(t, DominanceAbsent, ClassifyDominance(-60))
	assert.Equal(t, DominanceWeak, ClassifyDominance(-40))
	assert.Equal(t, DominancePresent, ClassifyDominance(-25))
	assert.Equal(t, DominanceDominant, ClassifyDominance(-10))
}

func TestBandAnalyzerSilenceIsFinite(t *testing.T) {
	framer := NewFramer()
	spectra := framer.PowerSpectra(make([]float64, 48000))
	bands := NewBandAnalyzer(48000, framer.FrameSize).Analyze(spectra)

	require.Len(t, bands, 7)
	for _, be := range bands {
		assert.False(t, math.IsNaN(be.AverageDb), "%s average", be.Band.Name)
		assert.False(t, math.IsInf(be.AverageDb, 0), "%s average", be.Band.Name)
		assert.Equal(t, -100.0, be.AverageDb, be.Band.Name)
		assert.Equal(t, DominanceAbsent, be.Dominance, be.Band.Name)
	}
}

func TestBandAnalyzerLocalizesTone(t *testing.T) {
	// A 1 kHz tone lands in Mids (500-2000 Hz) and nowhere near Sub Bass.
	framer := NewFramer()
	spectra := framer.PowerSpectra(sine(1000, 1.0, 48000))
	bands := NewBandAnalyzer(48000, framer.FrameSize).Analyze(spectra)

	byName := map[string]BandEnergy{}
	for _, be := range bands {
		byName[be.Band.Name] = be
	}
	assert.Greater(t, byName["Mids"].AverageDb, byName["Sub Bass"].AverageDb+20)
	assert.Greater(t, byName["Mids"].AverageDb, byName["Brilliance"].AverageDb+20)
}

func TestShortInputYieldsOneFrame(t *testing.T) {
	framer := NewFramer()
	assert.Equal(t, 1, framer.NumFrames(100))

	spectra := framer.PowerSpectra(sine(440, 0.001, 48000))
	require.Len(t, spectra, 1)
	require.Len(t, spectra[0], framer.FrameSize/2+1)
}

func TestCentroidOfSine(t *testing.T) {
	framer := NewFramer()
	spectra := framer.PowerSpectra(sine(1000, 1.0, 48000))
	centroid := CentroidMean(spectra, framer.FrameSize, 48000)
	assert.InDelta(t, 1000.0, centroid, 100.0)
}

func TestCentroidOfSilenceIsZero(t *testing.T) {
	framer := NewFramer()
	spectra := framer.PowerSpectra(make([]float64, 4096))
	assert.Equal(t, 0.0, CentroidMean(spectra, framer.FrameSize, 48000))
}

func TestGoertzelMatchesToneFrequency(t *testing.T) {
	signal := sine(440, 0.5, 48000)
	at := Goertzel(signal, 440, 48000)
	off := Goertzel(signal, 890, 48000)
	assert.Greater(t, at, off*100, "resonator at the tone must dwarf an off-frequency one")
}

func TestMFCCStats(t *testing.T) {
	framer := NewFramer()
	spectra := framer.PowerSpectra(sine(440, 1.0, 48000))
	stats := NewMFCC(48000, framer.FrameSize).ComputeStats(spectra)

	require.Len(t, stats.Means, 13)
	require.Len(t, stats.Stddevs, 13)
	for i := range stats.Means {
		assert.False(t, math.IsNaN(stats.Means[i]), "mean %d", i)
		assert.GreaterOrEqual(t, stats.Stddevs[i], 0.0, "stddev %d", i)
	}
}

func TestMFCCStationarity(t *testing.T) {
	// A sustained tone has near-constant frames; its coefficient spread
	// should be far below an amplitude-modulated one.
	framer := NewFramer()
	steady := sine(440, 2.0, 48000)
	modulated := make([]float64, len(steady))
	for i := range modulated {
		env := 0.5 + 0.5*math.Sin(2*math.Pi*3*float64(i)/48000)
		modulated[i] = env * math.Sin(2*math.Pi*(440+2000*env)*float64(i)/48000)
	}

	m := NewMFCC(48000, framer.FrameSize)
	steadyStats := m.ComputeStats(framer.PowerSpectra(steady))
	modStats := m.ComputeStats(framer.PowerSpectra(modulated))

	steadySpread, modSpread := 0.0, 0.0
	for i := 1; i < 13; i++ {
		steadySpread += steadyStats.Stddevs[i]
		modSpread += modStats.Stddevs[i]
	}
	assert.Less(t, steadySpread, modSpread)
}

func TestHannWindowEndpoints(t *testing.T) {
	h := NewHann(8)
	signal := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	windowed := h.Apply(signal)
	assert.InDelta(t, 0.0, windowed[0], 1e-12)
	assert.Greater(t, windowed[4], 0.9)
}
