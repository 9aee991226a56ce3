package truepeak

// Interpolator selects the oversampling filter.
type Interpolator int

const (
	// InterpolatorAnnex2 is the fixed 4x, 48-tap polyphase FIR of
	// ITU-R BS.1770-4 Annex 2.
	InterpolatorAnnex2 Interpolator = iota
	// InterpolatorWindowedSinc is a Kaiser-windowed sinc polyphase
	// interpolator with a configurable factor.
	InterpolatorWindowedSinc
)

func (i Interpolator) String() string {
	switch i {
	case InterpolatorAnnex2:
		return "annex2"
	case InterpolatorWindowedSinc:
		return "windowed-sinc"
	default:
		return "unknown"
	}
}

const (
	// DefaultOversampling is the BS.1770-4 minimum oversampling factor.
	DefaultOversampling = 4
	// DefaultClipThreshold is the clipping threshold in dBFS (|x| >= 1).
	DefaultClipThreshold = 0.0
	// DefaultSilenceFloor bounds reported levels from below, in dBTP.
	DefaultSilenceFloor = -60.0
)

// Config defines detector parameters.
type Config struct {
	Interpolator  Interpolator
	Oversampling  int
	ClipThreshold float64 // dBFS
	SilenceFloor  float64 // dBTP
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the Annex 2 detector with a 0 dBFS clip threshold.
func DefaultConfig() Config {
	return Config{
		Interpolator:  InterpolatorAnnex2,
		Oversampling:  DefaultOversampling,
		ClipThreshold: DefaultClipThreshold,
		SilenceFloor:  DefaultSilenceFloor,
	}
}

// WithInterpolator selects the oversampling filter.
func WithInterpolator(i Interpolator) Option {
	return func(cfg *Config) {
		cfg.Interpolator = i
	}
}

// WithOversampling sets the oversampling factor of the windowed-sinc
// interpolator. The Annex 2 filter is fixed at 4x. Values below 2 are
// ignored.
func WithOversampling(factor int) Option {
	return func(cfg *Config) {
		if factor >= 2 {
			cfg.Oversampling = factor
		}
	}
}

// WithClipThreshold sets the level in dBFS at or above which a discrete
// sample counts as clipped. Positive values are ignored.
func WithClipThreshold(dbfs float64) Option {
	return func(cfg *Config) {
		if dbfs <= 0 {
			cfg.ClipThreshold = dbfs
		}
	}
}

// WithSilenceFloor sets the lowest reported level in dBTP.
func WithSilenceFloor(db float64) Option {
	return func(cfg *Config) {
		if db < 0 {
			cfg.SilenceFloor = db
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

	if cfg.Interpolator == InterpolatorAnnex2 {
		cfg.Oversampling = DefaultOversampling
	}

	return cfg
}
