package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
)

// Generator creates deterministic test and calibration signals from a
// shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(core.WithSampleRate(sampleRate)),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

// Sine generates a sine wave with the given peak amplitude.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.SinePhase(freqHz, amplitude, 0, samples)
}

// SinePhase generates a sine wave starting at phase (radians).
func (g *Generator) SinePhase(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %.0f]: %f", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

// SineDBFS generates a sine wave whose peak sits at level dBFS.
func (g *Generator) SineDBFS(freqHz, level float64, samples int) ([]float64, error) {
	return g.Sine(freqHz, core.DBToLinear(level), samples)
}

// WhiteNoise generates deterministic uniform white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// WhiteNoiseRMS generates uniform white noise whose RMS level is rms dBFS.
// A uniform distribution over [-a, a] has RMS a/sqrt(3).
func (g *Generator) WhiteNoiseRMS(rms float64, samples int) ([]float64, error) {
	return g.WhiteNoise(core.DBToLinear(rms)*math.Sqrt(3), samples)
}

// Stereo wraps two generated channels into a stereo signal.
func (g *Generator) Stereo(left, right []float64) (Stereo, error) {
	return FromFloat64(left, right, int(math.Round(g.cfg.SampleRate)))
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
