package diagnose

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mixcheck/measure/spectral"
)

// TruePeakCeiling is the hard physical ceiling for true peak in dBTP.
const TruePeakCeiling = 0.0

// UnitPercent selects energy-percentage evaluation of a band.
const UnitPercent = "%"

// Status is the display grade of an evaluation.
type Status int

const (
	StatusNA Status = iota
	StatusOK
	StatusAttention
	StatusHigh
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusNA:
		return "N/A"
	case StatusOK:
		return "OK"
	case StatusAttention:
		return "ATTENTION"
	case StatusHigh:
		return "HIGH"
	case StatusCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Severity grades how far a value is outside its range.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// TargetRange is a normalized target for one metric or band. Callers
// guarantee Min <= Target <= Max; only the true-peak ceiling is enforced
// here, by Normalize.
type TargetRange struct {
	Target    float64
	Tolerance float64
	Min       float64
	Max       float64
	WarnFrom  *float64 // true peak only: values above are at least HIGH
	HardCap   *float64 // true peak only: ceiling below 0 dBTP
	Unit      string
}

// NewTargetRange returns a range of target ± tolerance.
func NewTargetRange(target, tolerance float64, unit string) TargetRange {
	return TargetRange{
		Target:    target,
		Tolerance: tolerance,
		Min:       target - tolerance,
		Max:       target + tolerance,
		Unit:      unit,
	}
}

// Normalize clamps the true-peak target and maximum to the ceiling. Other
// metrics are returned unchanged.
func (tr TargetRange) Normalize(m Metric) TargetRange {
	if m != MetricTruePeak {
		return tr
	}

	c := tr.ceiling()
	tr.Max = math.Min(tr.Max, c)
	tr.Target = math.Min(tr.Target, c)
	tr.Min = math.Min(tr.Min, tr.Target)

	return tr
}

func (tr TargetRange) ceiling() float64 {
	if tr.HardCap != nil && *tr.HardCap < TruePeakCeiling {
		return *tr.HardCap
	}

	return TruePeakCeiling
}

// Contains reports whether v lies in [Min, Max].
func (tr TargetRange) Contains(v float64) bool {
	return v >= tr.Min && v <= tr.Max
}

// Evaluation is the graded comparison of one value with its range.
type Evaluation struct {
	Status   Status
	Severity Severity
	// DiffToTarget is value - target.
	DiffToTarget float64
	// DiffToNearestLimit is the signed distance to the violated limit, 0
	// when in range.
	DiffToNearestLimit float64
	Action             string
	WithinRange        bool
	Critical           bool
}

// Evaluate grades value of metric m against tr. It is pure: identical
// inputs give identical results.
func Evaluate(m Metric, value float64, tr TargetRange) Evaluation {
	return evaluate(value, tr, m == MetricTruePeak)
}

// EvaluateBand grades a band measurement. A UnitPercent range compares
// the energy percentage, any other unit the band RMS level in dB.
func EvaluateBand(b spectral.BandResult, tr TargetRange) Evaluation {
	return evaluate(BandValue(b, tr), tr, false)
}

// BandValue returns the band quantity a range with tr's unit refers to.
func BandValue(b spectral.BandResult, tr TargetRange) float64 {
	if tr.Unit == UnitPercent {
		return b.EnergyPercent
	}

	return b.RMSDB
}

func evaluate(value float64, tr TargetRange, truePeak bool) Evaluation {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Evaluation{Status: StatusNA, Severity: SeverityNone, Action: "no measurement"}
	}

	diff := value - tr.Target
	within := tr.Contains(value)

	if truePeak {
		if c := tr.ceiling(); value > c {
			return Evaluation{
				Status:             StatusCritical,
				Severity:           SeverityCritical,
				DiffToTarget:       diff,
				DiffToNearestLimit: value - c,
				Action:             action(diff, tr.Unit),
				WithinRange:        within,
				Critical:           true,
			}
		}

		if tr.WarnFrom != nil && value > *tr.WarnFrom {
			limit := value - *tr.WarnFrom
			if value > tr.Max {
				limit = value - tr.Max
			}

			return Evaluation{
				Status:             StatusHigh,
				Severity:           SeverityHigh,
				DiffToTarget:       diff,
				DiffToNearestLimit: limit,
				Action:             action(value-*tr.WarnFrom, tr.Unit),
				WithinRange:        within,
			}
		}
	}

	if within {
		return Evaluation{
			Status:       StatusOK,
			Severity:     SeverityNone,
			DiffToTarget: diff,
			Action:       "within range",
			WithinRange:  true,
		}
	}

	dist := value - tr.Max
	if value < tr.Min {
		dist = value - tr.Min
	}

	status, sev := grade(dist, tr.Tolerance)
	if truePeak && dist < 0 && status > StatusAttention {
		status, sev = StatusAttention, SeverityMedium
	}

	return Evaluation{
		Status:             status,
		Severity:           sev,
		DiffToTarget:       diff,
		DiffToNearestLimit: dist,
		Action:             action(dist, tr.Unit),
		Critical:           status == StatusCritical,
	}
}

// grade maps a distance outside the range to multiples of tolerance. A
// non-positive tolerance makes every violation critical.
func grade(dist, tolerance float64) (Status, Severity) {
	ratio := math.Inf(1)
	if tolerance > 0 {
		ratio = math.Abs(dist) / tolerance
	}

	switch {
	case ratio <= 0.5:
		return StatusAttention, SeverityLow
	case ratio <= 1:
		return StatusAttention, SeverityMedium
	case ratio <= 2:
		return StatusHigh, SeverityHigh
	default:
		return StatusCritical, SeverityCritical
	}
}

// action describes the correction that removes an excess of delta.
func action(delta float64, unit string) string {
	verb := "decrease"
	if delta < 0 {
		verb = "increase"
	}

	s := fmt.Sprintf("%s by %.4g", verb, math.Abs(delta))
	if unit != "" {
		s += " " + unit
	}

	return s
}
