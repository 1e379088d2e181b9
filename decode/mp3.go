package decode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/soniqlab/trackprint/audio"
)

// go-mp3 emits extra padding ahead of the first real sample compared to
// reference decoders; combined with the LAME encoder delay this shifts
// every onset late, which matters for tempo work.
const mp3DecoderDelay = 924

// defaultEncoderDelay is used when the LAME header is absent.
const defaultEncoderDelay = 576

// MP3 decodes an MP3 file to a stereo buffer, trimming the combined
// encoder and decoder delay so sample positions line up with the source.
func MP3(path string) (*audio.Buffer, error) {
	delay := mp3DecoderDelay + readLAMEEncoderDelay(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	// The decoder always emits 16-bit signed stereo interleaved frames.
	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	frames := len(pcm) / 4
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		off := i * 4
		left[i] = float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768.0
		right[i] = float64(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) / 32768.0
	}
	if frames > delay {
		left = left[delay:]
		right = right[delay:]
	}

	return audio.NewStereo(left, right, decoder.SampleRate()), nil
}

// readLAMEEncoderDelay pulls the encoder delay out of a LAME/Xing header
// when one exists in the first frame.
func readLAMEEncoderDelay(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return defaultEncoderDelay
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if err != nil || n < 200 {
		return defaultEncoderDelay
	}
	buf = buf[:n]

	lameIdx := bytes.Index(buf, []byte("LAME"))
	if lameIdx == -1 {
		return defaultEncoderDelay
	}

	// 21 bytes past the "LAME" marker sits a 24-bit field holding the
	// encoder delay (upper 12 bits) and padding (lower 12 bits).
	off := lameIdx + 21
	if off+3 > len(buf) {
		return defaultEncoderDelay
	}
	delay := (int(buf[off]) << 4) | (int(buf[off+1]) >> 4)
	if delay < 0 || delay > 4096 {
		return defaultEncoderDelay
	}
	return delay
}
