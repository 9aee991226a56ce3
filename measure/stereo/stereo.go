package stereo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
)

// MaxBalanceDB bounds BalanceDB when one channel is silent.
const MaxBalanceDB = 60.0

var (
	// ErrEmptyInput is returned for channels without samples.
	ErrEmptyInput = errors.New("stereo: empty input")
	// ErrChannelMismatch is returned when left and right differ in length.
	ErrChannelMismatch = errors.New("stereo: channel length mismatch")
)

// PhaseStatus is a coarse reading of the correlation value.
type PhaseStatus int

const (
	PhaseInPhase PhaseStatus = iota
	PhaseMostlyInPhase
	PhasePartiallyCorrelated
	PhaseMostlyOutOfPhase
	PhaseOutOfPhase
)

func (p PhaseStatus) String() string {
	switch p {
	case PhaseInPhase:
		return "in phase"
	case PhaseMostlyInPhase:
		return "mostly in phase"
	case PhasePartiallyCorrelated:
		return "partially correlated"
	case PhaseMostlyOutOfPhase:
		return "mostly out of phase"
	case PhaseOutOfPhase:
		return "out of phase"
	default:
		return "unknown"
	}
}

// Result is the stereo image of a channel pair.
type Result struct {
	Correlation float64 // Pearson, [-1, 1]
	Width       float64 // RMS(L-R) / RMS(L+R)
	Balance     float64 // -1 full left, +1 full right
	BalanceDB   float64 // 20*log10(rmsR/rmsL), bounded by MaxBalanceDB

	RMSLeft  float64
	RMSRight float64
}

// Phase classifies the correlation.
func (r Result) Phase() PhaseStatus {
	switch c := r.Correlation; {
	case c > 0.9:
		return PhaseInPhase
	case c > 0.5:
		return PhaseMostlyInPhase
	case c > -0.5:
		return PhasePartiallyCorrelated
	case c > -0.9:
		return PhaseMostlyOutOfPhase
	default:
		return PhaseOutOfPhase
	}
}

// MonoCompatibility maps correlation from [-1, 1] onto [0, 1].
func (r Result) MonoCompatibility() float64 {
	return (r.Correlation + 1) / 2
}

// Analyze measures the stereo image over the whole signal. The inputs are
// not modified; non-finite samples count as silence.
func Analyze(left, right []float64) (Result, error) {
	if len(left) != len(right) {
		return Result{}, fmt.Errorf("%w: left=%d right=%d", ErrChannelMismatch, len(left), len(right))
	}

	if len(left) == 0 {
		return Result{}, ErrEmptyInput
	}

	left, _ = core.Sanitize(left)
	right, _ = core.Sanitize(right)

	var res Result

	res.Correlation = Correlation(left, right)
	res.Width = Width(left, right)

	n := float64(len(left))
	res.RMSLeft = math.Sqrt(floats.Dot(left, left) / n)
	res.RMSRight = math.Sqrt(floats.Dot(right, right) / n)
	res.Balance, res.BalanceDB = balance(res.RMSLeft, res.RMSRight)

	return res, nil
}

// Correlation returns the Pearson correlation of left and right, or 0 when
// either channel has zero variance. Inputs must have equal length.
func Correlation(left, right []float64) float64 {
	if len(left) < 2 || stat.Variance(left, nil) == 0 || stat.Variance(right, nil) == 0 {
		return 0
	}

	c := stat.Correlation(left, right, nil)
	if !core.IsFinite(c) {
		return 0
	}

	return core.Clamp(c, -1, 1)
}

// Width returns sqrt(sum((L-R)^2) / sum((L+R)^2)). A mono or silent signal
// has width 0; a fully out-of-phase signal is reported with MaxWidth.
func Width(left, right []float64) float64 {
	var side, mid float64

	for i := range left {
		s := left[i] - right[i]
		m := left[i] + right[i]
		side += s * s
		mid += m * m
	}

	switch {
	case side == 0:
		return 0
	case mid == 0:
		return MaxWidth
	default:
		return math.Min(math.Sqrt(side/mid), MaxWidth)
	}
}

// MaxWidth bounds Width for signals without a mid component.
const MaxWidth = 1000.0

func balance(rmsL, rmsR float64) (float64, float64) {
	total := rmsL + rmsR
	if total == 0 {
		return 0, 0
	}

	b := core.Clamp((rmsR-rmsL)/total, -1, 1)

	switch {
	case rmsL == 0:
		return b, MaxBalanceDB
	case rmsR == 0:
		return b, -MaxBalanceDB
	default:
		return b, core.Clamp(20*math.Log10(rmsR/rmsL), -MaxBalanceDB, MaxBalanceDB)
	}
}
