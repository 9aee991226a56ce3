package truepeak

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
	"github.com/cwbudde/algo-mixcheck/dsp/resample"
)

var (
	// ErrChannelMismatch is returned when stereo channels differ in length.
	ErrChannelMismatch = errors.New("truepeak: channel length mismatch")
	// ErrUnknownInterpolator is returned for an unsupported Interpolator.
	ErrUnknownInterpolator = errors.New("truepeak: unknown interpolator")
)

// Result is the peak measurement of one channel or of a merged pair.
type Result struct {
	MaxLinear float64 // true peak, linear
	MaxDBTP   float64 // true peak, never below the silence floor

	SamplePeakLinear float64
	SamplePeakDB     float64 // dBFS, never below the silence floor

	ClippingSamples uint64
	ClippingPercent float64
	TotalSamples    uint64

	Oversampling int
}

// Detector measures true peak with a fixed configuration. A Detector is
// safe for concurrent use; it holds no per-signal state.
type Detector struct {
	cfg       Config
	clipLevel float64
	upsampler *resample.Upsampler
}

// New returns a Detector for the given options.
func New(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)
	d := &Detector{cfg: cfg, clipLevel: core.DBToLinear(cfg.ClipThreshold)}

	switch cfg.Interpolator {
	case InterpolatorAnnex2:
	case InterpolatorWindowedSinc:
		up, err := resample.NewUpsampler(cfg.Oversampling, resample.WithQuality(resample.QualityBest))
		if err != nil {
			return nil, fmt.Errorf("truepeak: %w", err)
		}

		d.upsampler = up
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownInterpolator, cfg.Interpolator)
	}

	return d, nil
}

// Config returns the effective configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect measures a single channel with a one-off Detector.
func Detect(ch []float64, opts ...Option) (Result, error) {
	d, err := New(opts...)
	if err != nil {
		return Result{}, err
	}

	return d.Detect(ch), nil
}

// DetectStereo measures both channels with a one-off Detector and merges
// the results.
func DetectStereo(left, right []float64, opts ...Option) (Result, error) {
	d, err := New(opts...)
	if err != nil {
		return Result{}, err
	}

	return d.DetectStereo(left, right)
}

// Detect measures one channel. The input is not modified; non-finite
// samples count as silence. The true peak is never reported below the
// discrete sample peak.
func (d *Detector) Detect(ch []float64) Result {
	x, _ := core.Sanitize(ch)

	res := Result{
		TotalSamples: uint64(len(x)),
		Oversampling: d.cfg.Oversampling,
	}

	for _, v := range x {
		a := math.Abs(v)
		if a > res.SamplePeakLinear {
			res.SamplePeakLinear = a
		}

		if a >= d.clipLevel {
			res.ClippingSamples++
		}
	}

	res.MaxLinear = math.Max(d.interpolatedPeak(x), res.SamplePeakLinear)
	d.finish(&res)

	return res
}

// DetectStereo measures both channels and merges them: the larger true
// and sample peaks, and clip counts summed over all samples.
func (d *Detector) DetectStereo(left, right []float64) (Result, error) {
	if len(left) != len(right) {
		return Result{}, fmt.Errorf("%w: left=%d right=%d", ErrChannelMismatch, len(left), len(right))
	}

	return Merge(d.Detect(left), d.Detect(right)), nil
}

func (d *Detector) interpolatedPeak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	if d.upsampler == nil {
		return annex2Peak(x)
	}

	peak := 0.0
	for _, v := range d.upsampler.Upsample(x) {
		peak = math.Max(peak, math.Abs(v))
	}

	return peak
}

func (d *Detector) finish(r *Result) {
	r.MaxDBTP = core.LinearToDBFloor(r.MaxLinear, d.cfg.SilenceFloor)
	r.SamplePeakDB = core.LinearToDBFloor(r.SamplePeakLinear, d.cfg.SilenceFloor)

	if r.TotalSamples > 0 {
		r.ClippingPercent = 100 * float64(r.ClippingSamples) / float64(r.TotalSamples)
	}
}

// Merge combines per-channel results into one: maxima of the peak values
// and clipping statistics over the union of samples.
func Merge(results ...Result) Result {
	if len(results) == 0 {
		return Result{}
	}

	out := results[0]
	for _, r := range results[1:] {
		out.MaxLinear = math.Max(out.MaxLinear, r.MaxLinear)
		out.MaxDBTP = math.Max(out.MaxDBTP, r.MaxDBTP)
		out.SamplePeakLinear = math.Max(out.SamplePeakLinear, r.SamplePeakLinear)
		out.SamplePeakDB = math.Max(out.SamplePeakDB, r.SamplePeakDB)
		out.ClippingSamples += r.ClippingSamples
		out.TotalSamples += r.TotalSamples
		out.Oversampling = max(out.Oversampling, r.Oversampling)
	}

	out.ClippingPercent = 0
	if out.TotalSamples > 0 {
		out.ClippingPercent = 100 * float64(out.ClippingSamples) / float64(out.TotalSamples)
	}

	return out
}
