// Package decode turns WAV and MP3 files into in-memory sample buffers.
// It is the only part of the module that touches the filesystem; everything
// downstream operates on the decoded buffer alone.
package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/soniqlab/trackprint/audio"
)

// File decodes an audio file by extension. Supported: .wav (PCM 16/24-bit
// and 32-bit float) and .mp3.
func File(path string) (*audio.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WAV(path)
	case ".mp3":
		return MP3(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}
