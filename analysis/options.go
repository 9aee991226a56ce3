package analysis

import (
	"github.com/cwbudde/algo-mixcheck/dsp/fftpool"
	"github.com/cwbudde/algo-mixcheck/logging"
	"github.com/cwbudde/algo-mixcheck/measure/loudness"
	"github.com/cwbudde/algo-mixcheck/measure/spectral"
	"github.com/cwbudde/algo-mixcheck/measure/truepeak"
)

// Config collects the per-stage options.
type Config struct {
	Logger   logging.Logger
	Pool     *fftpool.Pool
	Loudness []loudness.Option
	TruePeak []truepeak.Option
	Spectral []spectral.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig uses the global logger and no worker pool.
func DefaultConfig() Config {
	return Config{Logger: logging.GetGlobalLogger()}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithFFTPool computes the spectral STFT frames on pool.
func WithFFTPool(pool *fftpool.Pool) Option {
	return func(cfg *Config) {
		cfg.Pool = pool
	}
}

// WithLoudnessOptions passes options to the loudness meter.
func WithLoudnessOptions(opts ...loudness.Option) Option {
	return func(cfg *Config) {
		cfg.Loudness = append(cfg.Loudness, opts...)
	}
}

// WithTruePeakOptions passes options to the true-peak detector.
func WithTruePeakOptions(opts ...truepeak.Option) Option {
	return func(cfg *Config) {
		cfg.TruePeak = append(cfg.TruePeak, opts...)
	}
}

// WithSpectralOptions passes options to the band analyzer.
func WithSpectralOptions(opts ...spectral.Option) Option {
	return func(cfg *Config) {
		cfg.Spectral = append(cfg.Spectral, opts...)
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
