package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV16 renders interleaved float channels as a PCM16 WAV file.
func writeWAV16(t *testing.T, path string, channels [][]float64, sampleRate int) {
	t.Helper()

	numChannels := len(channels)
	frames := len(channels[0])
	dataSize := frames * numChannels * 2

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*numChannels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < frames; i++ {
		for c := 0; c < numChannels; c++ {
			binary.Write(&buf, binary.LittleEndian, int16(channels[c][i]*32767))
		}
	}

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestWAVRoundTripMono(t *testing.T) {
	samples := make([]float64, 4800)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV16(t, path, [][]float64{samples}, 48000)

	buf, err := File(path)
	require.NoError(t, err)

	assert.Equal(t, 48000, buf.SampleRate)
	assert.Equal(t, 1, buf.NumChannels())
	require.Equal(t, len(samples), buf.NumSamples())
	for i := 0; i < len(samples); i += 100 {
		assert.InDelta(t, samples[i], buf.Channels[0][i], 1.0/32000, "sample %d", i)
	}
}

func TestWAVRoundTripStereo(t *testing.T) {
	left := make([]float64, 1000)
	right := make([]float64, 1000)
	for i := range left {
		left[i] = 0.25
		right[i] = -0.25
	}
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV16(t, path, [][]float64{left, right}, 44100)

	buf, err := WAV(path)
	require.NoError(t, err)

	assert.Equal(t, 44100, buf.SampleRate)
	require.Equal(t, 2, buf.NumChannels())
	assert.InDelta(t, 0.25, buf.Channels[0][500], 1e-3)
	assert.InDelta(t, -0.25, buf.Channels[1][500], 1e-3)
}

func TestWAVFloat32(t *testing.T) {
	frames := 256
	var buf bytes.Buffer
	dataSize := frames * 4
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(3)) // IEEE float
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(48000))
	binary.Write(&buf, binary.LittleEndian, uint32(48000*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(32))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < frames; i++ {
		binary.Write(&buf, binary.LittleEndian, float32(0.75))
	}

	path := filepath.Join(t.TempDir(), "float.wav")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	decoded, err := WAV(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, decoded.Channels[0][100], 1e-6)
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := File("track.flac")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
}

func TestWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file at all"), 0o644))

	_, err := WAV(path)
	assert.Error(t, err)
}

func TestMP3MissingFile(t *testing.T) {
	_, err := MP3(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestLAMEDelayDefaultWithoutHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.mp3")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))
	assert.Equal(t, defaultEncoderDelay, readLAMEEncoderDelay(path))
}
