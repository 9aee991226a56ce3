package signal

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
)

var (
	// ErrEmptySignal indicates a signal without samples.
	ErrEmptySignal = errors.New("signal: empty signal")
	// ErrChannelMismatch indicates channels of different length.
	ErrChannelMismatch = errors.New("signal: channel length mismatch")
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("signal: invalid sample rate")
)

// Stereo is a fully buffered two-channel signal. Both channels share the
// same length and sample rate. Measurement code only reads the buffers.
type Stereo struct {
	Left       []float32
	Right      []float32
	SampleRate int
}

// NewStereo builds a validated stereo signal from two channels.
func NewStereo(left, right []float32, sampleRate int) (Stereo, error) {
	s := Stereo{Left: left, Right: right, SampleRate: sampleRate}
	if err := s.Validate(); err != nil {
		return Stereo{}, err
	}

	return s, nil
}

// FromMono duplicates a mono channel into both stereo channels. The
// channels share the same backing array; that is fine because the engine
// never writes to input buffers.
func FromMono(mono []float32, sampleRate int) (Stereo, error) {
	return NewStereo(mono, mono, sampleRate)
}

// FromFloat64 converts float64 channels into a stereo signal.
func FromFloat64(left, right []float64, sampleRate int) (Stereo, error) {
	return NewStereo(toFloat32(left), toFloat32(right), sampleRate)
}

// Validate checks the channel and sample-rate invariants.
func (s Stereo) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.SampleRate)
	}

	if len(s.Left) != len(s.Right) {
		return fmt.Errorf("%w: left=%d right=%d", ErrChannelMismatch, len(s.Left), len(s.Right))
	}

	if len(s.Left) == 0 {
		return ErrEmptySignal
	}

	return nil
}

// Len returns the number of sample frames.
func (s Stereo) Len() int {
	return len(s.Left)
}

// Duration returns the signal length as a time.Duration.
func (s Stereo) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Left)) / float64(s.SampleRate) * float64(time.Second))
}

// Float64 returns float64 copies of both channels with non-finite samples
// replaced by 0, plus the total number of replaced samples.
func (s Stereo) Float64() (left, right []float64, replaced int) {
	left, badL := core.Float32To64(s.Left)
	right, badR := core.Float32To64(s.Right)

	return left, right, badL + badR
}

func toFloat32(src []float64) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}

	return out
}
