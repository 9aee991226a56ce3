package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-mixcheck/dsp/signal"
)

var errInvalidWAV = errors.New("invalid WAV file")

// readWAV decodes a PCM WAV file into a stereo signal.
func readWAV(path string) (signal.Stereo, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	return decodeWAV(f)
}

// decodeWAV reads PCM samples scaled to [-1, 1). Mono is duplicated into
// both channels; channels beyond the first two are ignored.
func decodeWAV(r io.ReadSeeker) (signal.Stereo, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return signal.Stereo{}, errInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("could not read PCM buffer: %w", err)
	}

	return toStereo(buf)
}

func toStereo(buf *audio.IntBuffer) (signal.Stereo, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return signal.Stereo{}, errInvalidWAV
	}

	depth := buf.SourceBitDepth
	if depth < 8 || depth > 32 {
		return signal.Stereo{}, fmt.Errorf("%w: unsupported bit depth %d", errInvalidWAV, depth)
	}

	scale := 1 / float32(int64(1)<<(depth-1))
	offset := 0
	if depth == 8 {
		offset = 128 // 8-bit PCM is unsigned
	}

	chans := buf.Format.NumChannels
	frames := len(buf.Data) / chans
	left := make([]float32, frames)
	right := left

	if chans > 1 {
		right = make([]float32, frames)
	}

	for i := range frames {
		left[i] = float32(buf.Data[i*chans]-offset) * scale
		if chans > 1 {
			right[i] = float32(buf.Data[i*chans+1]-offset) * scale
		}
	}

	return signal.NewStereo(left, right, buf.Format.SampleRate)
}
