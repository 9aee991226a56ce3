package resample

import (
	"errors"
	"fmt"
)

// ErrInvalidFactor indicates an oversampling factor below 1.
var ErrInvalidFactor = errors.New("resample: invalid oversampling factor")

// Quality controls default anti-imaging filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
}

// Option configures the upsampler.
type Option func(*config)

// WithQuality selects a predefined quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 places the cutoff at the input Nyquist frequency.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.tapsPerPhase <= 0 {
		c.tapsPerPhase = p.TapsPerPhase
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta <= 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	return c
}

// Upsampler performs integer-factor oversampling with a polyphase
// Kaiser-windowed sinc interpolator. It is stateless between calls.
type Upsampler struct {
	factor  int
	quality Quality
	taps    []float64
	phases  [][]float64
	delay   int
}

// NewUpsampler designs an interpolator for the given factor.
func NewUpsampler(factor int, opts ...Option) (*Upsampler, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	cfg := config{quality: QualityBalanced}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	taps, phases, err := designPolyphaseFIR(factor, cfg)
	if err != nil {
		return nil, err
	}

	return &Upsampler{
		factor:  factor,
		quality: cfg.quality,
		taps:    taps,
		phases:  phases,
		delay:   (len(taps) - 1) / 2,
	}, nil
}

// Upsample returns len(x)*factor samples. The filter group delay is
// removed so output sample i*factor lines up with input sample i, and the
// filter tail past the last input is not emitted.
func (u *Upsampler) Upsample(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	if u.factor == 1 {
		return append([]float64(nil), x...)
	}

	L := u.factor
	out := make([]float64, len(x)*L)

	for m := range out {
		// Output m is sample j of the zero-stuffed, filtered stream.
		j := m + u.delay
		p := j % L
		n := j / L

		var y float64

		for k, c := range u.phases[p] {
			idx := n - k
			if idx < 0 {
				break
			}

			if idx < len(x) {
				y += c * x[idx]
			}
		}

		out[m] = y
	}

	return out
}

// Factor returns the oversampling factor.
func (u *Upsampler) Factor() int {
	return u.factor
}

// Quality returns the configured quality mode.
func (u *Upsampler) Quality() Quality {
	return u.quality
}

// TapsPerPhase returns taps in the longest polyphase branch.
func (u *Upsampler) TapsPerPhase() int {
	if len(u.phases) == 0 {
		return 0
	}

	return len(u.phases[0])
}

// Prototype returns a copy of the underlying prototype FIR taps.
func (u *Upsampler) Prototype() []float64 {
	return append([]float64(nil), u.taps...)
}
