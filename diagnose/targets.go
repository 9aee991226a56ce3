package diagnose

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/cwbudde/algo-mixcheck/measure/spectral"
)

var (
	// ErrUnknownGenre is returned by DefaultTargets for an unknown genre.
	ErrUnknownGenre = errors.New("diagnose: unknown genre")
	// ErrInvalidRange is returned for a decoded range with min > target,
	// target > max or a negative tolerance.
	ErrInvalidRange = errors.New("diagnose: invalid target range")
)

type rangeDoc struct {
	Target    float64  `json:"target"`
	Tolerance float64  `json:"tolerance"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	WarnFrom  *float64 `json:"warn_from,omitempty"`
	HardCap   *float64 `json:"hard_cap,omitempty"`
	Unit      string   `json:"unit,omitempty"`
}

type targetsDoc struct {
	Genre   string              `json:"genre"`
	Metrics map[string]rangeDoc `json:"metrics"`
	Bands   map[string]rangeDoc `json:"bands"`
}

func (d rangeDoc) toRange(defaultUnit string) TargetRange {
	tr := NewTargetRange(d.Target, d.Tolerance, d.Unit)
	if tr.Unit == "" {
		tr.Unit = defaultUnit
	}

	if d.Min != nil {
		tr.Min = *d.Min
	}

	if d.Max != nil {
		tr.Max = *d.Max
	}

	tr.WarnFrom = d.WarnFrom
	tr.HardCap = d.HardCap

	return tr
}

func checkRange(name string, tr TargetRange) error {
	if tr.Tolerance < 0 || tr.Min > tr.Target || tr.Target > tr.Max || math.IsNaN(tr.Target) {
		return fmt.Errorf("%w: %s: min=%g target=%g max=%g tolerance=%g",
			ErrInvalidRange, name, tr.Min, tr.Target, tr.Max, tr.Tolerance)
	}

	return nil
}

// DecodeTargets reads a JSON target document:
//
//	{
//	  "genre": "pop",
//	  "metrics": {"lufs_integrated": {"target": -14, "tolerance": 1}},
//	  "bands": {"graves": {"target": 22, "tolerance": 5, "unit": "%"}}
//	}
//
// Min and max default to target ∓ tolerance. Metric units default to the
// metric's unit, band units to percent. Unknown metrics and bands are
// errors.
func DecodeTargets(r io.Reader) (Targets, error) {
	var doc targetsDoc

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&doc); err != nil {
		return Targets{}, fmt.Errorf("diagnose: decode targets: %w", err)
	}

	metrics := make(map[Metric]TargetRange, len(doc.Metrics))

	for key, rd := range doc.Metrics {
		m, err := ParseMetric(key)
		if err != nil {
			return Targets{}, err
		}

		tr := rd.toRange(m.Unit()).Normalize(m)
		if err := checkRange(key, tr); err != nil {
			return Targets{}, err
		}

		metrics[m] = tr
	}

	bands := make(map[string]TargetRange, len(doc.Bands))

	for key, rd := range doc.Bands {
		tr := rd.toRange(UnitPercent)
		if err := checkRange(key, tr); err != nil {
			return Targets{}, err
		}

		bands[key] = tr
	}

	return NewTargets(doc.Genre, metrics, bands)
}

// EncodeTargets writes t in the format read by DecodeTargets.
func EncodeTargets(w io.Writer, t Targets) error {
	doc := targetsDoc{
		Genre:   t.Genre,
		Metrics: make(map[string]rangeDoc, len(t.Metrics)),
		Bands:   make(map[string]rangeDoc, len(t.Bands)),
	}

	for m, tr := range t.Metrics {
		doc.Metrics[m.Key()] = toDoc(tr)
	}

	for name, tr := range t.Bands {
		doc.Bands[name] = toDoc(tr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

func toDoc(tr TargetRange) rangeDoc {
	lo, hi := tr.Min, tr.Max

	return rangeDoc{
		Target:    tr.Target,
		Tolerance: tr.Tolerance,
		Min:       &lo,
		Max:       &hi,
		WarnFrom:  tr.WarnFrom,
		HardCap:   tr.HardCap,
		Unit:      tr.Unit,
	}
}

type genreProfile struct {
	integrated float64
	truePeak   float64
	lra        float64
	crest      float64
	width      float64
	bands      [7]float64 // percent, spectral.DefaultBands order
}

var genres = map[string]genreProfile{
	"pop":       {-14, -1, 6, 9, 0.5, [7]float64{8, 22, 14, 28, 12, 8, 8}},
	"edm":       {-9, -1, 5, 7, 0.6, [7]float64{12, 25, 12, 24, 12, 8, 7}},
	"rock":      {-11, -1, 6, 8, 0.5, [7]float64{6, 20, 16, 30, 13, 8, 7}},
	"hiphop":    {-10, -1, 6, 8, 0.4, [7]float64{15, 26, 12, 23, 11, 7, 6}},
	"classical": {-23, -2, 15, 16, 0.5, [7]float64{3, 15, 16, 32, 16, 10, 8}},
}

// Genres lists the built-in genres.
func Genres() []string {
	out := make([]string, 0, len(genres))
	for g := range genres {
		out = append(out, g)
	}

	sort.Strings(out)

	return out
}

// DefaultTargets returns the built-in targets of a genre.
func DefaultTargets(genre string) (Targets, error) {
	p, ok := genres[normalizeKey(genre)]
	if !ok {
		return Targets{}, fmt.Errorf("%w: %q", ErrUnknownGenre, genre)
	}

	warn := p.truePeak + 0.5

	tp := NewTargetRange(p.truePeak, 1, "dBTP")
	tp.WarnFrom = &warn

	corr := NewTargetRange(0.6, 0.3, "")
	corr.Min, corr.Max = 0.2, 1

	metrics := map[Metric]TargetRange{
		MetricIntegratedLoudness: NewTargetRange(p.integrated, 1, "LUFS"),
		MetricShortTermLoudness:  NewTargetRange(p.integrated, 3, "LUFS"),
		MetricTruePeak:           tp,
		MetricLoudnessRange:      NewTargetRange(p.lra, p.lra/2, "LU"),
		MetricStereoCorrelation:  corr,
		MetricStereoWidth:        NewTargetRange(p.width, 0.3, ""),
		MetricCrestFactor:        NewTargetRange(p.crest, 3, "dB"),
	}

	bands := make(map[string]TargetRange, len(p.bands))
	for i, name := range spectral.BandNames() {
		bands[name] = NewTargetRange(p.bands[i], 5, UnitPercent)
	}

	return NewTargets(normalizeKey(genre), metrics, bands)
}
