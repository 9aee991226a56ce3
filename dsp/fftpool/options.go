package fftpool

import (
	"runtime"
	"time"

	"github.com/cwbudde/algo-mixcheck/logging"
)

// Defaults.
const (
	DefaultWorkers   = 2
	DefaultTimeout   = 2 * time.Second
	DefaultQueueSize = 64
)

// Config defines the pool.
type Config struct {
	Workers   int
	Timeout   time.Duration // per task
	QueueSize int
	Logger    logging.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns two workers with a 2 s task timeout.
func DefaultConfig() Config {
	return Config{
		Workers:   DefaultWorkers,
		Timeout:   DefaultTimeout,
		QueueSize: DefaultQueueSize,
		Logger:    logging.GetGlobalLogger(),
	}
}

// WithWorkers sets the number of workers, capped at GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithTimeout sets how long a caller waits for a worker before computing
// the transform itself.
func WithTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.Timeout = d
		}
	}
}

// WithQueueSize sets the capacity of the task queue.
func WithQueueSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.QueueSize = n
		}
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
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

	cfg.Workers = max(1, min(cfg.Workers, runtime.GOMAXPROCS(0)))

	return cfg
}
