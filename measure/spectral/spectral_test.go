package spectral

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-mixcheck/dsp/fft"
	"github.com/cwbudde/algo-mixcheck/internal/testutil"
)

const fs = 48000.0

func percentSum(r Result) float64 {
	sum := 0.0
	for _, b := range r.Bands {
		sum += b.EnergyPercent
	}
	return sum
}

func TestEnergyPercentSumsTo100(t *testing.T) {
	signals := map[string][]float64{
		"noise":  testutil.DeterministicNoise(11, 0.3, int(fs*2)),
		"tone":   testutil.DeterministicSine(1000, fs, 0.5, int(fs)),
		"short":  testutil.DeterministicNoise(5, 0.3, 1000),
		"tones":  mix(testutil.DeterministicSine(80, fs, 0.5, int(fs)), testutil.DeterministicSine(8000, fs, 0.1, int(fs))),
		"nyquist": testutil.DeterministicSine(23000, fs, 0.5, 8192),
	}

	for name, x := range signals {
		res, err := Analyze(context.Background(), x, x, fs)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		if math.Abs(percentSum(res)-100) > 0.01 {
			t.Fatalf("%s: energy shares sum to %v", name, percentSum(res))
		}
	}
}

func mix(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func TestToneLandsInItsBand(t *testing.T) {
	tests := []struct {
		freq float64
		band string
	}{
		{40, BandSub},
		{120, BandBass},
		{350, BandLowMid},
		{1000, BandMid},
		{3000, BandHighMid},
		{5000, BandPresence},
		{10000, BandBrilliance},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			x := testutil.DeterministicSine(tt.freq, fs, 0.5, int(fs))

			res, err := AnalyzeMono(context.Background(), x, fs)
			if err != nil {
				t.Fatal(err)
			}

			b, ok := res.ByName(tt.band)
			if !ok {
				t.Fatalf("band %q missing", tt.band)
			}
			if b.EnergyPercent < 95 {
				t.Fatalf("%v Hz: %s holds %.2f%% (%v)", tt.freq, tt.band, b.EnergyPercent, res.Percentages())
			}
		})
	}
}

func TestSilenceHasNoEnergy(t *testing.T) {
	x := make([]float64, 10000)

	res, err := Analyze(context.Background(), x, x, fs)
	if err != nil {
		t.Fatal(err)
	}

	for _, b := range res.Bands {
		if b.Energy != 0 || b.EnergyPercent != 0 || !math.IsInf(b.RMSDB, -1) {
			t.Fatalf("silent band %+v", b)
		}
	}
}

func TestBandBinsAreDeterministic(t *testing.T) {
	x := testutil.DeterministicNoise(1, 0.1, 4096)

	res, err := AnalyzeMono(context.Background(), x, fs)
	if err != nil {
		t.Fatal(err)
	}

	// 48000/4096 = 11.71875 Hz per bin.
	want := map[string][2]int{
		BandSub:        {1, 4},
		BandMid:        {42, 169},
		BandBrilliance: {512, 1706},
	}

	for name, bins := range want {
		b, _ := res.ByName(name)
		if b.FirstBin != bins[0] || b.LastBin != bins[1] {
			t.Fatalf("%s bins = [%d, %d], want %v", name, b.FirstBin, b.LastBin, bins)
		}
	}

	for i := 1; i < len(res.Bands); i++ {
		if res.Bands[i].FirstBin != res.Bands[i-1].LastBin+1 {
			t.Fatalf("bands %d and %d overlap or leave a gap", i-1, i)
		}
	}

	if res.Frames != 1 || len(res.Magnitude) != 2049 {
		t.Fatalf("frames = %d, bins = %d", res.Frames, len(res.Magnitude))
	}
}

func TestRMSDBOfFullScaleTone(t *testing.T) {
	quiet := testutil.DeterministicSine(1000, fs, 0.05, int(fs))
	loud := testutil.DeterministicSine(1000, fs, 0.5, int(fs))

	q, err := AnalyzeMono(context.Background(), quiet, fs)
	if err != nil {
		t.Fatal(err)
	}
	l, err := AnalyzeMono(context.Background(), loud, fs)
	if err != nil {
		t.Fatal(err)
	}

	qm, _ := q.ByName(BandMid)
	lm, _ := l.ByName(BandMid)

	if math.Abs(lm.RMSDB-qm.RMSDB-20) > 1e-6 {
		t.Fatalf("10x amplitude changed band level by %.6f dB", lm.RMSDB-qm.RMSDB)
	}
}

type countingFrames struct {
	calls  int
	frames int
	tr     *fft.Transformer
}

func (c *countingFrames) TransformFrames(_ context.Context, frames [][]float64) ([]*fft.Spectrum, error) {
	c.calls++
	c.frames += len(frames)

	out := make([]*fft.Spectrum, len(frames))
	for i, f := range frames {
		sp, err := c.tr.Transform(f)
		if err != nil {
			return nil, err
		}
		out[i] = sp
	}

	return out, nil
}

func TestFrameTransformerMatchesSequential(t *testing.T) {
	x := testutil.DeterministicNoise(9, 0.4, int(fs))

	seq, err := AnalyzeMono(context.Background(), x, fs)
	if err != nil {
		t.Fatal(err)
	}

	ft := &countingFrames{tr: fft.NewTransformer()}

	par, err := AnalyzeMono(context.Background(), x, fs, WithFrameTransformer(ft))
	if err != nil {
		t.Fatal(err)
	}

	if ft.calls != 1 || ft.frames != seq.Frames {
		t.Fatalf("transformer saw %d calls / %d frames, want 1 / %d", ft.calls, ft.frames, seq.Frames)
	}

	for i := range seq.Bands {
		if seq.Bands[i].EnergyPercent != par.Bands[i].EnergyPercent {
			t.Fatalf("band %d differs: %v vs %v", i, seq.Bands[i].EnergyPercent, par.Bands[i].EnergyPercent)
		}
	}
}

func TestCustomBandsAndOptions(t *testing.T) {
	bands := []Band{
		{Name: "low", LowHz: 0, HighHz: 1000},
		{Name: "high", LowHz: 1000, HighHz: 24000},
	}

	x := testutil.DeterministicSine(4000, fs, 0.5, 8192)

	res, err := AnalyzeMono(context.Background(), x, fs, WithBands(bands), WithFrameSize(1024), WithHopSize(512))
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Bands) != 2 || res.FrameSize != 1024 {
		t.Fatalf("result %+v", res)
	}
	if h, _ := res.ByName("high"); h.EnergyPercent < 99 || h.LastBin != 512 {
		t.Fatalf("high band %+v", h)
	}
}

func TestErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := Analyze(ctx, nil, nil, fs); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty: %v", err)
	}
	if _, err := Analyze(ctx, []float64{1}, []float64{1, 1}, fs); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
	if _, err := Analyze(ctx, []float64{1}, []float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("sample rate: %v", err)
	}
	if _, err := AnalyzeMono(ctx, []float64{1}, fs, WithFrameSize(1000)); !errors.Is(err, fft.ErrNotPowerOfTwo) {
		t.Fatalf("frame size: %v", err)
	}
}
