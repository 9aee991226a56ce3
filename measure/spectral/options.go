package spectral

import (
	"github.com/cwbudde/algo-mixcheck/dsp/fft"
	"github.com/cwbudde/algo-mixcheck/dsp/window"
)

// Analysis defaults.
const (
	DefaultFrameSize = 4096
	DefaultHopSize   = 1024
)

// Config defines the band analysis.
type Config struct {
	FrameSize int
	HopSize   int
	Window    window.Type
	Bands     []Band
	Frames    fft.FrameTransformer
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 4096-point Hann analysis with hop 1024 over
// DefaultBands.
func DefaultConfig() Config {
	return Config{
		FrameSize: DefaultFrameSize,
		HopSize:   DefaultHopSize,
		Window:    window.TypeHann,
		Bands:     DefaultBands(),
	}
}

// WithFrameSize sets the STFT frame length.
func WithFrameSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.FrameSize = n
		}
	}
}

// WithHopSize sets the STFT hop.
func WithHopSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.HopSize = n
		}
	}
}

// WithWindow sets the analysis window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithBands replaces the band set. An empty set is ignored.
func WithBands(bands []Band) Option {
	return func(cfg *Config) {
		if len(bands) > 0 {
			cfg.Bands = append([]Band(nil), bands...)
		}
	}
}

// WithFrameTransformer computes the STFT frames with ft, typically a
// worker pool.
func WithFrameTransformer(ft fft.FrameTransformer) Option {
	return func(cfg *Config) {
		cfg.Frames = ft
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
