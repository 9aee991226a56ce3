package diagnose

import (
	"fmt"

	"github.com/cwbudde/algo-mixcheck/analysis"
)

// Targets holds the ranges a report is compared with. Bands are keyed by
// canonical band name.
type Targets struct {
	Genre   string
	Metrics map[Metric]TargetRange
	Bands   map[string]TargetRange
}

// NewTargets normalizes metric ranges and resolves band aliases.
func NewTargets(genre string, metrics map[Metric]TargetRange, bands map[string]TargetRange) (Targets, error) {
	t := Targets{
		Genre:   genre,
		Metrics: make(map[Metric]TargetRange, len(metrics)),
	}

	for m, tr := range metrics {
		if !m.Valid() {
			return Targets{}, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
		}

		t.Metrics[m] = tr.Normalize(m)
	}

	nb, err := NormalizeBands(bands)
	if err != nil {
		return Targets{}, err
	}

	t.Bands = nb

	return t, nil
}

// MetricEvaluation is one row of a metric comparison.
type MetricEvaluation struct {
	Metric Metric
	Value  float64
	Range  TargetRange
	Evaluation
}

// BandEvaluation is one row of a band comparison.
type BandEvaluation struct {
	Band  string
	Value float64
	Range TargetRange
	Evaluation
}

// Diagnosis is the evaluation of a report against one set of targets.
type Diagnosis struct {
	Genre   string
	Metrics []MetricEvaluation
	Bands   []BandEvaluation
}

// Diagnose evaluates every metric and band that has a target. Metrics are
// listed in Metrics() order, bands in the report's band order.
func Diagnose(rep *analysis.Report, t Targets) Diagnosis {
	d := Diagnosis{Genre: t.Genre}

	for _, m := range Metrics() {
		tr, ok := t.Metrics[m]
		if !ok {
			continue
		}

		v := m.Value(rep)
		d.Metrics = append(d.Metrics, MetricEvaluation{
			Metric:     m,
			Value:      v,
			Range:      tr,
			Evaluation: Evaluate(m, v, tr),
		})
	}

	for _, b := range rep.Spectral.Bands {
		c, ok := CanonicalBand(b.Name)
		if !ok {
			continue
		}

		tr, ok := t.Bands[c]
		if !ok {
			continue
		}

		d.Bands = append(d.Bands, BandEvaluation{
			Band:       b.Name,
			Value:      BandValue(b, tr),
			Range:      tr,
			Evaluation: EvaluateBand(b, tr),
		})
	}

	return d
}

// Worst returns the highest status of all rows, StatusNA when empty.
func (d Diagnosis) Worst() Status {
	worst := StatusNA

	for _, r := range d.Metrics {
		worst = max(worst, r.Status)
	}

	for _, r := range d.Bands {
		worst = max(worst, r.Status)
	}

	return worst
}

// Critical reports whether any row is critical.
func (d Diagnosis) Critical() bool {
	return d.Worst() == StatusCritical
}
