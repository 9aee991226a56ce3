package spectral

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
	"github.com/cwbudde/algo-mixcheck/dsp/fft"
	"github.com/cwbudde/algo-mixcheck/dsp/spectrum"
	freqstats "github.com/cwbudde/algo-mixcheck/stats/frequency"
)

var (
	// ErrEmptyInput is returned for channels without samples.
	ErrEmptyInput = errors.New("spectral: empty input")
	// ErrChannelMismatch is returned when left and right differ in length.
	ErrChannelMismatch = errors.New("spectral: channel length mismatch")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("spectral: invalid sample rate")
)

// BandResult is the measured energy of one band.
type BandResult struct {
	Band

	FirstBin      int
	LastBin       int // inclusive, LastBin < FirstBin for an empty range
	Energy        float64
	RMSDB         float64 // -Inf for a band without energy
	EnergyPercent float64
}

// Result is the band analysis of one signal.
type Result struct {
	SampleRate float64
	FrameSize  int
	Frames     int

	Bands []BandResult
	Shape freqstats.Shape

	// Magnitude is the frame-averaged magnitude of bins 0..FrameSize/2.
	Magnitude []float64
}

// ByName returns the result of the named band.
func (r Result) ByName(name string) (BandResult, bool) {
	for _, b := range r.Bands {
		if b.Name == name {
			return b, true
		}
	}

	return BandResult{}, false
}

// Percentages returns band name to energy share.
func (r Result) Percentages() map[string]float64 {
	out := make(map[string]float64, len(r.Bands))
	for _, b := range r.Bands {
		out[b.Name] = b.EnergyPercent
	}

	return out
}

// Analyze measures the band energy of a stereo pair mixed to mono.
func Analyze(ctx context.Context, left, right []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(left) != len(right) {
		return Result{}, fmt.Errorf("%w: left=%d right=%d", ErrChannelMismatch, len(left), len(right))
	}

	if len(left) == 0 {
		return Result{}, ErrEmptyInput
	}

	if !(sampleRate > 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	left, _ = core.Sanitize(left)
	right, _ = core.Sanitize(right)

	mono := make([]float64, len(left))
	floats.AddTo(mono, left, right)
	floats.Scale(0.5, mono)

	return AnalyzeMono(ctx, mono, sampleRate, opts...)
}

// AnalyzeMono measures the band energy of a single channel.
func AnalyzeMono(ctx context.Context, x []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(x) == 0 {
		return Result{}, ErrEmptyInput
	}

	if !(sampleRate > 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := ApplyOptions(opts...)

	stft, err := fft.NewSTFT(
		fft.WithFrameSize(cfg.FrameSize),
		fft.WithHopSize(cfg.HopSize),
		fft.WithWindow(cfg.Window),
		fft.WithFrameTransformer(cfg.Frames),
	)
	if err != nil {
		return Result{}, fmt.Errorf("spectral: %w", err)
	}

	x, _ = core.Sanitize(x)

	mag, err := stft.AverageMagnitude(ctx, x)
	if err != nil {
		return Result{}, fmt.Errorf("spectral: %w", err)
	}

	res := Result{
		SampleRate: sampleRate,
		FrameSize:  cfg.FrameSize,
		Frames:     stft.FrameCount(len(x)),
		Magnitude:  mag,
		Shape:      freqstats.Describe(mag, sampleRate),
		Bands:      measureBands(mag, sampleRate, cfg.FrameSize, cfg.Bands),
	}

	return res, nil
}

func measureBands(mag []float64, sampleRate float64, frameSize int, bands []Band) []BandResult {
	out := make([]BandResult, len(bands))
	energies := make([]float64, len(bands))

	for i, b := range bands {
		first := spectrum.BinIndex(b.LowHz, sampleRate, frameSize)
		last := spectrum.BinIndex(b.HighHz, sampleRate, frameSize)

		if i < len(bands)-1 {
			last--
		}

		r := BandResult{Band: b, FirstBin: first, LastBin: last, RMSDB: math.Inf(-1)}

		if last >= first {
			bins := mag[first : last+1]
			r.Energy = floats.Dot(bins, bins)

			if r.Energy > 0 {
				r.RMSDB = 20 * math.Log10(math.Sqrt(r.Energy/float64(len(bins))))
			}
		}

		energies[i] = r.Energy
		out[i] = r
	}

	total := floats.Sum(energies)
	if total <= 0 {
		return out
	}

	for i := range out {
		out[i].EnergyPercent = 100 * energies[i] / total
	}

	// Rescale once more so rounding in the division cannot leave the
	// shares away from 100.
	sum := 0.0
	for _, r := range out {
		sum += r.EnergyPercent
	}

	if sum > 0 {
		for i := range out {
			out[i].EnergyPercent *= 100 / sum
		}
	}

	return out
}
