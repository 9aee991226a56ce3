package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-mixcheck/dsp/signal"
	"github.com/cwbudde/algo-mixcheck/logging"
	"github.com/cwbudde/algo-mixcheck/measure/loudness"
	"github.com/cwbudde/algo-mixcheck/measure/spectral"
	"github.com/cwbudde/algo-mixcheck/measure/stereo"
	"github.com/cwbudde/algo-mixcheck/measure/truepeak"
	timestats "github.com/cwbudde/algo-mixcheck/stats/time"
)

// Stage names a step of the analysis.
type Stage string

const (
	StageValidate Stage = "validate"
	StageLoudness Stage = "loudness"
	StageTruePeak Stage = "truepeak"
	StageStereo   Stage = "stereo"
	StageSpectral Stage = "spectral"
	StageStats    Stage = "stats"
)

// ErrPanic marks a stage that panicked.
var ErrPanic = errors.New("analysis: panic")

// StageError reports the stage at which an analysis failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("analysis: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Report holds every measurement of one signal.
type Report struct {
	SampleRate int
	Samples    int
	Duration   time.Duration
	// ReplacedSamples counts NaN and ±Inf input samples treated as 0.
	ReplacedSamples int

	Loudness loudness.Result
	TruePeak truepeak.Result
	Stereo   stereo.Result
	Spectral spectral.Result
	Stats    timestats.StereoStats
}

// Analyze measures sig. The signal buffers are only read. A stage failure
// or panic is returned as a *StageError; Analyze itself never panics.
func Analyze(ctx context.Context, sig signal.Stereo, opts ...Option) (rep *Report, err error) {
	cfg := ApplyOptions(opts...)
	log := cfg.Logger.WithFields(logging.Fields{
		"sample_rate": sig.SampleRate,
		"samples":     sig.Len(),
	})

	stage := StageValidate

	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = &StageError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}

		if err != nil {
			log.Error(err, "analysis failed")
		}
	}()

	if err := sig.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidate, Err: err}
	}

	left, right, replaced := sig.Float64()
	if replaced > 0 {
		log.Warn("non-finite samples replaced with silence", logging.Fields{"count": replaced})
	}

	fs := float64(sig.SampleRate)
	rep = &Report{
		SampleRate:      sig.SampleRate,
		Samples:         sig.Len(),
		Duration:        sig.Duration(),
		ReplacedSamples: replaced,
	}

	run := func(s Stage, fn func() error) error {
		stage = s

		if err := ctx.Err(); err != nil {
			return &StageError{Stage: s, Err: err}
		}

		start := time.Now()

		if err := fn(); err != nil {
			return &StageError{Stage: s, Err: err}
		}

		log.Debug("stage done", logging.Fields{"stage": string(s), "elapsed": time.Since(start)})

		return nil
	}

	steps := []struct {
		stage Stage
		fn    func() error
	}{
		{StageLoudness, func() (err error) {
			lopts := append([]loudness.Option{loudness.WithSampleRate(fs)}, cfg.Loudness...)
			rep.Loudness, err = loudness.Analyze(left, right, lopts...)
			return err
		}},
		{StageTruePeak, func() (err error) {
			rep.TruePeak, err = truepeak.DetectStereo(left, right, cfg.TruePeak...)
			return err
		}},
		{StageStereo, func() (err error) {
			rep.Stereo, err = stereo.Analyze(left, right)
			return err
		}},
		{StageSpectral, func() (err error) {
			sopts := cfg.Spectral
			if cfg.Pool != nil {
				sopts = append([]spectral.Option{spectral.WithFrameTransformer(cfg.Pool)}, sopts...)
			}

			rep.Spectral, err = spectral.Analyze(ctx, left, right, fs, sopts...)
			return err
		}},
		{StageStats, func() error {
			rep.Stats = timestats.CalculateStereo(left, right)
			return nil
		}},
	}

	for _, st := range steps {
		if err := run(st.stage, st.fn); err != nil {
			return nil, err
		}
	}

	log.Info("analysis complete", logging.Fields{
		"integrated_lufs": rep.Loudness.Integrated,
		"true_peak_dbtp":  rep.TruePeak.MaxDBTP,
	})

	return rep, nil
}

// FailedStage returns the stage of a *StageError in err's chain.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}
