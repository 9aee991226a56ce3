package loudness

import (
	"time"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
)

// Gate and window defaults from ITU-R BS.1770-4 and EBU Tech 3342.
const (
	DefaultBlockDuration     = 400 * time.Millisecond
	DefaultHop               = 100 * time.Millisecond
	DefaultShortTermDuration = 3 * time.Second
	DefaultAbsoluteGate      = -70.0 // LUFS
	DefaultRelativeGate      = -10.0 // LU below the preliminary loudness
	DefaultLRARelativeGate   = -20.0 // LU below the integrated loudness
)

// Config defines the analysis parameters.
type Config struct {
	core.ProcessorConfig

	BlockDuration     time.Duration
	Hop               time.Duration
	ShortTermDuration time.Duration
	AbsoluteGate      float64
	RelativeGate      float64
	LRARelativeGate   float64

	// LegacyLRA computes the loudness range from every finite short-term
	// value without the absolute or relative gate.
	LegacyLRA bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the BS.1770-4 defaults at 48 kHz.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:   core.DefaultProcessorConfig(),
		BlockDuration:     DefaultBlockDuration,
		Hop:               DefaultHop,
		ShortTermDuration: DefaultShortTermDuration,
		AbsoluteGate:      DefaultAbsoluteGate,
		RelativeGate:      DefaultRelativeGate,
		LRARelativeGate:   DefaultLRARelativeGate,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockDuration sets the gating block length.
func WithBlockDuration(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.BlockDuration = d
		}
	}
}

// WithHop sets the distance between block starts.
func WithHop(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.Hop = d
		}
	}
}

// WithShortTermDuration sets the short-term window length.
func WithShortTermDuration(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.ShortTermDuration = d
		}
	}
}

// WithAbsoluteGate sets the absolute gate in LUFS.
func WithAbsoluteGate(lufs float64) Option {
	return func(cfg *Config) {
		if lufs < 0 {
			cfg.AbsoluteGate = lufs
		}
	}
}

// WithRelativeGate sets the integrated-loudness relative gate in LU (negative).
func WithRelativeGate(lu float64) Option {
	return func(cfg *Config) {
		if lu < 0 {
			cfg.RelativeGate = lu
		}
	}
}

// WithLRARelativeGate sets the loudness-range relative gate in LU (negative).
func WithLRARelativeGate(lu float64) Option {
	return func(cfg *Config) {
		if lu < 0 {
			cfg.LRARelativeGate = lu
		}
	}
}

// WithLRALegacy selects the ungated percentile loudness range.
func WithLRALegacy() Option {
	return func(cfg *Config) {
		cfg.LegacyLRA = true
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

func (c Config) samples(d time.Duration) int {
	return max(1, int(d.Seconds()*c.SampleRate+0.5))
}

// shortTermBlocks returns ceil(ShortTermDuration / BlockDuration).
func (c Config) shortTermBlocks() int {
	n := int(c.ShortTermDuration / c.BlockDuration)
	if c.ShortTermDuration%c.BlockDuration != 0 {
		n++
	}

	return max(1, n)
}
