package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/soniqlab/trackprint/audio"
)

const (
	waveFormatPCM        = 1
	waveFormatIEEEFloat  = 3
	waveFormatExtensible = 0xFFFE
)

// WAV decodes a RIFF/WAVE file. PCM 16-bit, PCM 24-bit and 32-bit float
// sample formats are supported; all channels are kept.
func WAV(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return readWAV(f)
}

func readWAV(r io.Reader) (*audio.Buffer, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		format     uint16
		channels   int
		sampleRate int
		bitDepth   int
		data       []byte
	)

	// Walk chunks until both fmt and data are seen. Chunk sizes are
	// word-aligned; odd sizes carry one pad byte.
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too small: %d bytes", size)
			}
			format = binary.LittleEndian.Uint16(body[0:2])
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))
			if format == waveFormatExtensible && size >= 40 {
				// Sub-format GUID starts with the real format tag.
				format = binary.LittleEndian.Uint16(body[24:26])
			}
		case "data":
			data = make([]byte, size)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}
		default:
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return nil, fmt.Errorf("failed to skip %q chunk: %w", id, err)
			}
		}
		if size%2 == 1 {
			io.CopyN(io.Discard, r, 1)
		}
		if channels > 0 && data != nil {
			break
		}
	}

	if channels <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("missing or invalid fmt chunk")
	}
	if data == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	return decodeWAVData(format, channels, sampleRate, bitDepth, data)
}

func decodeWAVData(format uint16, channels, sampleRate, bitDepth int, data []byte) (*audio.Buffer, error) {
	bytesPerSample := bitDepth / 8
	if bytesPerSample <= 0 {
		return nil, fmt.Errorf("invalid bit depth: %d", bitDepth)
	}
	frames := len(data) / (bytesPerSample * channels)

	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}

	switch {
	case format == waveFormatPCM && bitDepth == 16:
		for i := 0; i < frames; i++ {
			for c := 0; c < channels; c++ {
				off := (i*channels + c) * 2
				s := int16(binary.LittleEndian.Uint16(data[off:]))
				out[c][i] = float64(s) / 32768.0
			}
		}
	case format == waveFormatPCM && bitDepth == 24:
		for i := 0; i < frames; i++ {
			for c := 0; c < channels; c++ {
				off := (i*channels + c) * 3
				s := int32(data[off]) | int32(data[off+1])<<8 | int32(data[off+2])<<16
				if s&0x800000 != 0 {
					s |= ^int32(0xFFFFFF) // sign-extend
				}
				out[c][i] = float64(s) / 8388608.0
			}
		}
	case format == waveFormatIEEEFloat && bitDepth == 32:
		for i := 0; i < frames; i++ {
			for c := 0; c < channels; c++ {
				off := (i*channels + c) * 4
				bits := binary.LittleEndian.Uint32(data[off:])
				out[c][i] = float64(math.Float32frombits(bits))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported WAV encoding: format %d, %d-bit", format, bitDepth)
	}

	return &audio.Buffer{Channels: out, SampleRate: sampleRate}, nil
}
