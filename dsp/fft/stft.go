package fft

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mixcheck/dsp/window"
)

// ErrInvalidHop is returned when the hop size is not in (0, FrameSize].
var ErrInvalidHop = errors.New("fft: hop size must be in (0, frame size]")

// FrameTransformer transforms a batch of equally sized frames. The
// returned slice is index-aligned with frames. The worker pool in
// dsp/fftpool implements it.
type FrameTransformer interface {
	TransformFrames(ctx context.Context, frames [][]float64) ([]*Spectrum, error)
}

// STFTConfig configures short-time analysis.
type STFTConfig struct {
	FrameSize int
	HopSize   int
	Window    window.Type
	// Frames, when set, computes the per-frame transforms. Otherwise frames
	// are transformed sequentially by a private Transformer.
	Frames FrameTransformer
}

// STFTOption mutates an STFTConfig.
type STFTOption func(*STFTConfig)

// DefaultSTFTConfig returns a 4096-point Hann analysis with 75% overlap.
func DefaultSTFTConfig() STFTConfig {
	return STFTConfig{
		FrameSize: 4096,
		HopSize:   1024,
		Window:    window.Default,
	}
}

// WithFrameSize sets the frame length. Non-positive values are ignored.
func WithFrameSize(n int) STFTOption {
	return func(cfg *STFTConfig) {
		if n > 0 {
			cfg.FrameSize = n
		}
	}
}

// WithHopSize sets the hop between frame starts. Non-positive values are ignored.
func WithHopSize(n int) STFTOption {
	return func(cfg *STFTConfig) {
		if n > 0 {
			cfg.HopSize = n
		}
	}
}

// WithWindow sets the analysis window.
func WithWindow(t window.Type) STFTOption {
	return func(cfg *STFTConfig) {
		cfg.Window = t
	}
}

// WithFrameTransformer delegates frame transforms to ft.
func WithFrameTransformer(ft FrameTransformer) STFTOption {
	return func(cfg *STFTConfig) {
		cfg.Frames = ft
	}
}

// STFT slides a window across a signal and transforms each frame. An STFT
// is not safe for concurrent use.
type STFT struct {
	cfg    STFTConfig
	coeffs []float64
	local  *Transformer
}

// Frame is the magnitude and phase of bins 0..N/2 of one analysis frame.
type Frame struct {
	Start     int
	Magnitude []float64
	Phase     []float64
}

// Spectrogram holds every frame of an STFT.
type Spectrogram struct {
	FrameSize int
	HopSize   int
	Frames    []Frame
}

// NewSTFT validates the configuration and precomputes the window.
func NewSTFT(opts ...STFTOption) (*STFT, error) {
	cfg := DefaultSTFTConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := ValidateSize(cfg.FrameSize); err != nil {
		return nil, fmt.Errorf("fft: stft frame size: %w", err)
	}

	if cfg.HopSize <= 0 || cfg.HopSize > cfg.FrameSize {
		return nil, fmt.Errorf("%w: hop=%d frame=%d", ErrInvalidHop, cfg.HopSize, cfg.FrameSize)
	}

	return &STFT{
		cfg:    cfg,
		coeffs: window.Generate(cfg.Window, cfg.FrameSize),
		local:  NewTransformer(),
	}, nil
}

// Config returns the effective configuration.
func (s *STFT) Config() STFTConfig {
	return s.cfg
}

// FrameCount returns the number of frames produced for n input samples.
// The last frame starts at or before the final sample and an input shorter
// than one frame produces exactly one frame.
func (s *STFT) FrameCount(n int) int {
	if n <= s.cfg.FrameSize {
		return 1
	}

	rest := n - s.cfg.FrameSize

	return 1 + (rest+s.cfg.HopSize-1)/s.cfg.HopSize
}

// Frames returns the windowed frames of x. A frame that runs past the end
// of x is zero-filled to full length before the window is applied.
func (s *STFT) Frames(x []float64) ([][]float64, error) {
	count := s.FrameCount(len(x))
	frames := make([][]float64, count)

	for i := range frames {
		start := i * s.cfg.HopSize
		end := min(start+s.cfg.FrameSize, len(x))

		frame := make([]float64, s.cfg.FrameSize)
		if start < end {
			copy(frame, x[start:end])
		}

		if err := window.ApplyCoefficientsInPlace(frame, s.coeffs); err != nil {
			return nil, fmt.Errorf("fft: stft frame %d: %w", i, err)
		}

		frames[i] = frame
	}

	return frames, nil
}

// Spectrogram returns magnitude and phase for every frame.
func (s *STFT) Spectrogram(ctx context.Context, x []float64) (*Spectrogram, error) {
	spectra, err := s.transform(ctx, x)
	if err != nil {
		return nil, err
	}

	bins := s.cfg.FrameSize/2 + 1
	out := &Spectrogram{
		FrameSize: s.cfg.FrameSize,
		HopSize:   s.cfg.HopSize,
		Frames:    make([]Frame, len(spectra)),
	}

	for i, sp := range spectra {
		out.Frames[i] = Frame{
			Start:     i * s.cfg.HopSize,
			Magnitude: sp.Magnitude()[:bins],
			Phase:     sp.Phase()[:bins],
		}
	}

	return out, nil
}

// PowerSpectrum returns |X|^2 of bins 0..N/2 averaged over all frames.
func (s *STFT) PowerSpectrum(ctx context.Context, x []float64) ([]float64, error) {
	return s.accumulate(ctx, x, (*Spectrum).Power)
}

// AverageMagnitude returns |X| of bins 0..N/2 averaged over all frames.
func (s *STFT) AverageMagnitude(ctx context.Context, x []float64) ([]float64, error) {
	return s.accumulate(ctx, x, (*Spectrum).Magnitude)
}

func (s *STFT) accumulate(ctx context.Context, x []float64, view func(*Spectrum) []float64) ([]float64, error) {
	spectra, err := s.transform(ctx, x)
	if err != nil {
		return nil, err
	}

	acc := make([]float64, s.cfg.FrameSize/2+1)
	for _, sp := range spectra {
		v := view(sp)
		for k := range acc {
			acc[k] += v[k]
		}
	}

	inv := 1 / float64(len(spectra))
	for k := range acc {
		acc[k] *= inv
	}

	return acc, nil
}

func (s *STFT) transform(ctx context.Context, x []float64) ([]*Spectrum, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	frames, err := s.Frames(x)
	if err != nil {
		return nil, err
	}

	if s.cfg.Frames != nil {
		spectra, err := s.cfg.Frames.TransformFrames(ctx, frames)
		if err != nil {
			return nil, fmt.Errorf("fft: stft frames: %w", err)
		}

		if len(spectra) != len(frames) {
			return nil, fmt.Errorf("fft: stft frames: got %d spectra for %d frames", len(spectra), len(frames))
		}

		return spectra, nil
	}

	spectra := make([]*Spectrum, len(frames))
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sp, err := s.local.Transform(frame)
		if err != nil {
			return nil, err
		}

		spectra[i] = sp
	}

	return spectra, nil
}
