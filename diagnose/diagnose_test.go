package diagnose

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-mixcheck/analysis"
	"github.com/cwbudde/algo-mixcheck/measure/loudness"
	"github.com/cwbudde/algo-mixcheck/measure/spectral"
	"github.com/cwbudde/algo-mixcheck/measure/stereo"
	"github.com/cwbudde/algo-mixcheck/measure/truepeak"
	timestats "github.com/cwbudde/algo-mixcheck/stats/time"
)

func TestParseMetric(t *testing.T) {
	tests := map[string]Metric{
		"lufs_integrated":    MetricIntegratedLoudness,
		"Integrated":         MetricIntegratedLoudness,
		"short-term":         MetricShortTermLoudness,
		"true peak":          MetricTruePeak,
		"DBTP":               MetricTruePeak,
		"lra":                MetricLoudnessRange,
		"correlation":        MetricStereoCorrelation,
		"stereo_width":       MetricStereoWidth,
		" crest_factor_db ":  MetricCrestFactor,
		"stereo_correlation": MetricStereoCorrelation,
	}

	for key, want := range tests {
		got, err := ParseMetric(key)
		if err != nil || got != want {
			t.Errorf("ParseMetric(%q) = %v, %v; want %v", key, got, err, want)
		}
	}

	if _, err := ParseMetric("tempo"); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("unknown metric: %v", err)
	}
}

func TestMetricKeysRoundTrip(t *testing.T) {
	for _, m := range Metrics() {
		got, err := ParseMetric(m.Key())
		if err != nil || got != m {
			t.Fatalf("%v: %v, %v", m, got, err)
		}

		if m.Name() == "" {
			t.Fatalf("%v has no name", m)
		}
	}

	if Metric(99).Valid() || Metric(99).String() != "Metric(99)" {
		t.Fatal("invalid metric")
	}
}

func TestMetricAsJSONKey(t *testing.T) {
	in := map[Metric]float64{MetricTruePeak: -1, MetricLoudnessRange: 6}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != `{"lra":6,"true_peak":-1}` {
		t.Fatalf("json = %s", data)
	}

	var out map[Metric]float64
	if err := json.Unmarshal([]byte(`{"dbtp":-2}`), &out); err != nil {
		t.Fatal(err)
	}

	if out[MetricTruePeak] != -2 {
		t.Fatalf("decoded %v", out)
	}
}

func TestCanonicalBand(t *testing.T) {
	tests := map[string]string{
		"sub":         spectral.BandSub,
		"Sub Bass":    spectral.BandSub,
		"graves":      spectral.BandBass,
		"low-mid":     spectral.BandLowMid,
		"medio_grave": spectral.BandLowMid,
		"Médio":       spectral.BandMid,
		"high_mid":    spectral.BandHighMid,
		"presenca":    spectral.BandPresence,
		"Presença":    spectral.BandPresence,
		"brilho":      spectral.BandBrilliance,
		"air":         spectral.BandBrilliance,
	}

	for name, want := range tests {
		got, ok := CanonicalBand(name)
		if !ok || got != want {
			t.Errorf("CanonicalBand(%q) = %q, %v; want %q", name, got, ok, want)
		}
	}

	if _, ok := CanonicalBand("ultrasonic"); ok {
		t.Fatal("unexpected match")
	}

	for _, name := range spectral.BandNames() {
		if got, ok := CanonicalBand(name); !ok || got != name {
			t.Fatalf("canonical %q not resolved to itself", name)
		}
	}
}

func TestNormalizeBandsConflicts(t *testing.T) {
	a := NewTargetRange(10, 1, UnitPercent)
	b := NewTargetRange(20, 1, UnitPercent)
	c := NewTargetRange(30, 1, UnitPercent)

	got, err := NormalizeBands(map[string]TargetRange{"graves": a, "bass": b, "low": c})
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 || got[spectral.BandBass] != b {
		t.Fatalf("canonical key should win: %v", got)
	}

	got, err = NormalizeBands(map[string]TargetRange{"low": c, "graves": a})
	if err != nil {
		t.Fatal(err)
	}

	if got[spectral.BandBass] != a {
		t.Fatalf("first alias should win: %v", got)
	}

	if _, err := NormalizeBands(map[string]TargetRange{"ultrasonic": a}); !errors.Is(err, ErrUnknownBand) {
		t.Fatalf("err = %v", err)
	}
}

func TestSilentMidCrestFactorIsNA(t *testing.T) {
	tests := map[string][2][]float64{
		"silence":   {make([]float64, 100), make([]float64, 100)},
		"side_only": {{0.5, -0.5, 0.25, -0.25}, {-0.5, 0.5, -0.25, 0.25}},
	}

	tr := NewTargetRange(9, 3, "dB")
	for name, ch := range tests {
		rep := testReport()
		rep.Stats = timestats.CalculateStereo(ch[0], ch[1])

		ev := Evaluate(MetricCrestFactor, MetricCrestFactor.Value(rep), tr)
		if ev.Status != StatusNA || ev.Severity != SeverityNone {
			t.Fatalf("%s: crest factor graded %v/%v", name, ev.Status, ev.Severity)
		}
	}
}

func testReport() *analysis.Report {
	bands := make([]spectral.BandResult, 0, 7)
	for _, b := range spectral.DefaultBands() {
		bands = append(bands, spectral.BandResult{Band: b, RMSDB: -30, EnergyPercent: 100.0 / 7})
	}

	return &analysis.Report{
		SampleRate: 48000,
		Loudness:   loudness.Result{Integrated: -14.2, ShortTerm: -13.8, LRA: 5},
		TruePeak:   truepeak.Result{MaxDBTP: 0.4},
		Stereo:     stereo.Result{Correlation: 0.7, Width: 0.4},
		Spectral:   spectral.Result{Bands: bands},
		Stats:      timestats.StereoStats{Mid: timestats.Stats{CrestFactorDB: math.Inf(1)}},
	}
}

func TestDiagnose(t *testing.T) {
	targets, err := NewTargets("test",
		map[Metric]TargetRange{
			MetricTruePeak:           NewTargetRange(-1, 1, "dBTP"),
			MetricIntegratedLoudness: NewTargetRange(-14, 1, "LUFS"),
			MetricCrestFactor:        NewTargetRange(9, 3, "dB"),
		},
		map[string]TargetRange{
			"graves":   NewTargetRange(14, 5, UnitPercent),
			"bass":     NewTargetRange(15, 5, UnitPercent),
			"presenca": NewTargetRange(40, 5, UnitPercent),
		})
	if err != nil {
		t.Fatal(err)
	}

	d := Diagnose(testReport(), targets)

	if len(d.Metrics) != 3 {
		t.Fatalf("metrics = %d", len(d.Metrics))
	}

	wantOrder := []Metric{MetricIntegratedLoudness, MetricTruePeak, MetricCrestFactor}
	for i, m := range wantOrder {
		if d.Metrics[i].Metric != m {
			t.Fatalf("row %d = %v, want %v", i, d.Metrics[i].Metric, m)
		}
	}

	if d.Metrics[0].Status != StatusOK {
		t.Fatalf("loudness: %v", d.Metrics[0].Status)
	}

	if d.Metrics[1].Status != StatusCritical || math.Abs(d.Metrics[1].DiffToTarget-1.4) > 1e-12 {
		t.Fatalf("true peak: %+v", d.Metrics[1])
	}

	if d.Metrics[2].Status != StatusNA {
		t.Fatalf("crest: %v", d.Metrics[2].Status)
	}

	if len(d.Bands) != 2 {
		t.Fatalf("bands evaluated %d times, want 2", len(d.Bands))
	}

	if d.Bands[0].Band != spectral.BandBass || d.Bands[0].Range.Target != 15 {
		t.Fatalf("bass row: %+v", d.Bands[0])
	}

	if d.Bands[1].Band != spectral.BandPresence || d.Bands[1].Status != StatusCritical {
		t.Fatalf("presence row: %+v", d.Bands[1])
	}

	if d.Worst() != StatusCritical || !d.Critical() {
		t.Fatalf("worst = %v", d.Worst())
	}
}

func TestDecodeTargets(t *testing.T) {
	doc := `{
		"genre": "custom",
		"metrics": {
			"integrated": {"target": -14, "tolerance": 1},
			"true_peak": {"target": 1, "tolerance": 1, "warn_from": -0.5},
			"correlation": {"target": 0.6, "tolerance": 0.3, "min": 0.2, "max": 1}
		},
		"bands": {
			"graves": {"target": 20, "tolerance": 5},
			"mid": {"target": -30, "tolerance": 3, "unit": "dB"}
		}
	}`

	tg, err := DecodeTargets(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	if tg.Genre != "custom" {
		t.Fatalf("genre = %q", tg.Genre)
	}

	il := tg.Metrics[MetricIntegratedLoudness]
	if il.Min != -15 || il.Max != -13 || il.Unit != "LUFS" {
		t.Fatalf("integrated: %+v", il)
	}

	tp := tg.Metrics[MetricTruePeak]
	if tp.Max != 0 || tp.Target != 0 || tp.WarnFrom == nil || *tp.WarnFrom != -0.5 {
		t.Fatalf("true peak not clamped: %+v", tp)
	}

	corr := tg.Metrics[MetricStereoCorrelation]
	if corr.Min != 0.2 || corr.Max != 1 {
		t.Fatalf("correlation: %+v", corr)
	}

	if b, ok := tg.Bands[spectral.BandBass]; !ok || b.Unit != UnitPercent || b.Min != 15 {
		t.Fatalf("bass: %+v", b)
	}

	if tg.Bands[spectral.BandMid].Unit != "dB" {
		t.Fatalf("mid: %+v", tg.Bands[spectral.BandMid])
	}
}

func TestDecodeTargetsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"metric", `{"metrics": {"tempo": {"target": 120, "tolerance": 5}}}`, ErrUnknownMetric},
		{"band", `{"bands": {"ultrasonic": {"target": 1, "tolerance": 1}}}`, ErrUnknownBand},
		{"range", `{"metrics": {"lra": {"target": 6, "tolerance": 1, "min": 7}}}`, ErrInvalidRange},
		{"tolerance", `{"bands": {"mid": {"target": 6, "tolerance": -1}}}`, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTargets(strings.NewReader(tt.doc)); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := DecodeTargets(strings.NewReader(`{"genre": "x", "extra": 1}`)); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestEncodeDecodeTargets(t *testing.T) {
	want, err := DefaultTargets("rock")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeTargets(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeTargets(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Genre != want.Genre || len(got.Metrics) != len(want.Metrics) || len(got.Bands) != len(want.Bands) {
		t.Fatalf("got %+v", got)
	}

	for m, tr := range want.Metrics {
		g := got.Metrics[m]
		if g.Target != tr.Target || g.Min != tr.Min || g.Max != tr.Max || g.Unit != tr.Unit {
			t.Fatalf("%v: %+v != %+v", m, g, tr)
		}
	}
}

func TestDefaultTargets(t *testing.T) {
	for _, g := range Genres() {
		tg, err := DefaultTargets(g)
		if err != nil {
			t.Fatal(err)
		}

		if len(tg.Metrics) != len(Metrics()) {
			t.Fatalf("%s: %d metrics", g, len(tg.Metrics))
		}

		sum := 0.0
		for _, tr := range tg.Bands {
			sum += tr.Target
		}

		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("%s: band targets sum to %v", g, sum)
		}

		tp := tg.Metrics[MetricTruePeak]
		if tp.Max > TruePeakCeiling || tp.WarnFrom == nil {
			t.Fatalf("%s: true peak %+v", g, tp)
		}

		for m, tr := range tg.Metrics {
			if tr.Min > tr.Target || tr.Target > tr.Max {
				t.Fatalf("%s %v: %+v", g, m, tr)
			}
		}
	}

	if _, err := DefaultTargets("polka"); !errors.Is(err, ErrUnknownGenre) {
		t.Fatalf("err = %v", err)
	}

	if len(Genres()) != 5 {
		t.Fatalf("genres = %v", Genres())
	}
}
