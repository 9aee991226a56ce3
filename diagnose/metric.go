package diagnose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-mixcheck/analysis"
)

// ErrUnknownMetric is returned when a metric key cannot be resolved.
var ErrUnknownMetric = errors.New("diagnose: unknown metric")

// Metric identifies a scalar measurement of a report.
type Metric int

const (
	MetricIntegratedLoudness Metric = iota
	MetricShortTermLoudness
	MetricTruePeak
	MetricLoudnessRange
	MetricStereoCorrelation
	MetricStereoWidth
	MetricCrestFactor

	metricCount
)

type metricInfo struct {
	key     string
	name    string
	unit    string
	aliases []string
	value   func(*analysis.Report) float64
}

var metricTable = [metricCount]metricInfo{
	MetricIntegratedLoudness: {
		key: "lufs_integrated", name: "Integrated loudness", unit: "LUFS",
		aliases: []string{"integrated", "lufs", "integrated_loudness", "loudness"},
		value:   func(r *analysis.Report) float64 { return r.Loudness.Integrated },
	},
	MetricShortTermLoudness: {
		key: "lufs_short_term", name: "Short-term loudness", unit: "LUFS",
		aliases: []string{"short_term", "shortterm", "short_term_loudness"},
		value:   func(r *analysis.Report) float64 { return r.Loudness.ShortTerm },
	},
	MetricTruePeak: {
		key: "true_peak", name: "True peak", unit: "dBTP",
		aliases: []string{"truepeak", "dbtp", "true_peak_dbtp", "peak"},
		value:   func(r *analysis.Report) float64 { return r.TruePeak.MaxDBTP },
	},
	MetricLoudnessRange: {
		key: "lra", name: "Loudness range", unit: "LU",
		aliases: []string{"loudness_range"},
		value:   func(r *analysis.Report) float64 { return r.Loudness.LRA },
	},
	MetricStereoCorrelation: {
		key: "stereo_correlation", name: "Stereo correlation", unit: "",
		aliases: []string{"correlation", "phase_correlation"},
		value:   func(r *analysis.Report) float64 { return r.Stereo.Correlation },
	},
	MetricStereoWidth: {
		key: "stereo_width", name: "Stereo width", unit: "",
		aliases: []string{"width"},
		value:   func(r *analysis.Report) float64 { return r.Stereo.Width },
	},
	MetricCrestFactor: {
		key: "crest_factor", name: "Crest factor", unit: "dB",
		aliases: []string{"crest", "crest_factor_db", "dynamics"},
		value:   func(r *analysis.Report) float64 { return r.Stats.Mid.CrestFactorDB },
	},
}

var metricKeys = func() map[string]Metric {
	m := make(map[string]Metric)

	for i, info := range metricTable {
		m[info.key] = Metric(i)
		for _, a := range info.aliases {
			m[a] = Metric(i)
		}
	}

	return m
}()

// Metrics returns every metric in display order.
func Metrics() []Metric {
	out := make([]Metric, metricCount)
	for i := range out {
		out[i] = Metric(i)
	}

	return out
}

// ParseMetric resolves a configuration key or one of its aliases.
func ParseMetric(key string) (Metric, error) {
	if m, ok := metricKeys[normalizeKey(key)]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
}

// Valid reports whether m is one of the defined metrics.
func (m Metric) Valid() bool {
	return m >= 0 && m < metricCount
}

// Key returns the configuration key.
func (m Metric) Key() string {
	if !m.Valid() {
		return ""
	}

	return metricTable[m].key
}

// Name returns the display name.
func (m Metric) Name() string {
	if !m.Valid() {
		return ""
	}

	return metricTable[m].name
}

// Unit returns the measurement unit, empty for ratios.
func (m Metric) Unit() string {
	if !m.Valid() {
		return ""
	}

	return metricTable[m].unit
}

// Value reads the metric from a report.
func (m Metric) Value(r *analysis.Report) float64 {
	return metricTable[m].value(r)
}

func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Metric(%d)", int(m))
	}

	return m.Key()
}

// MarshalText encodes the metric as its configuration key.
func (m Metric) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}

	return []byte(m.Key()), nil
}

// UnmarshalText accepts any key understood by ParseMetric.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
