package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func singleBin(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}

	return mag
}

func flat(n int, amplitude float64) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		mag[i] = amplitude
	}

	return mag
}

func TestDescribeDegenerate(t *testing.T) {
	for name, mag := range map[string][]float64{
		"nil":      nil,
		"one_bin":  {3},
		"all_zero": make([]float64, 513),
	} {
		if s := Describe(mag, 48000); s != (Shape{}) {
			t.Fatalf("%s: shape = %+v, want zero", name, s)
		}
	}
}

func TestDescribeSingleBin(t *testing.T) {
	// 1024-point transform at 48 kHz: bin 64 is 3000 Hz.
	mag := singleBin(513, 64, 1)

	s := Describe(mag, 48000)

	for name, got := range map[string]float64{
		"centroid": s.Centroid,
		"rolloff":  s.Rolloff,
		"peak":     s.PeakHz,
	} {
		if math.Abs(got-3000) > tolerance {
			t.Fatalf("%s = %v, want 3000", name, got)
		}
	}

	if s.Spread != 0 || s.Flatness != 0 {
		t.Fatalf("spread %v flatness %v, want 0", s.Spread, s.Flatness)
	}

	// Neighbours are zero, so the -3 dB points sit
	// (1 - 1/sqrt2) of a bin away on each side.
	wantBW := 2 * (1 - 1/math.Sqrt2) * 48000 / 1024
	if math.Abs(s.Bandwidth-wantBW) > 1e-6 {
		t.Fatalf("bandwidth = %v, want %v", s.Bandwidth, wantBW)
	}
}

func TestFlatness(t *testing.T) {
	if got := Flatness(flat(257, 0.3)); math.Abs(got-1) > tolerance {
		t.Fatalf("flat spectrum flatness = %v, want 1", got)
	}

	mag := flat(257, 1)
	mag[10] = 0
	if got := Flatness(mag); got != 0 {
		t.Fatalf("flatness with zero bin = %v, want 0", got)
	}

	// DC is ignored.
	mag = flat(257, 1)
	mag[0] = 100
	if got := Flatness(mag); math.Abs(got-1) > tolerance {
		t.Fatalf("flatness with DC = %v, want 1", got)
	}

	tonal := singleBin(257, 20, 1)
	for i := range tonal {
		tonal[i] += 1e-6
	}
	if got := Flatness(tonal); got > 0.01 {
		t.Fatalf("tonal flatness = %v", got)
	}
}

func TestCentroidOfSymmetricSpectrum(t *testing.T) {
	mag := []float64{0, 1, 2, 1, 0}
	if got := Centroid(mag, 8000); math.Abs(got-2000) > tolerance {
		t.Fatalf("centroid = %v, want 2000", got)
	}
	if got := Centroid([]float64{1}, 8000); got != 0 {
		t.Fatalf("single-bin centroid = %v", got)
	}
}

func TestRolloff(t *testing.T) {
	tests := []struct {
		name    string
		mag     []float64
		percent float64
		want    float64
	}{
		{"flat_half", flat(5, 1), 0.5, 2000},
		{"flat_all", flat(5, 1), 1, 4000},
		{"low_heavy", []float64{0, 3, 1, 0, 0}, 0.85, 1000},
		{"silent", make([]float64, 5), 0.85, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rolloff(tt.mag, 8000, tt.percent); math.Abs(got-tt.want) > tolerance {
				t.Fatalf("rolloff = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBandwidthFlatIsFullRange(t *testing.T) {
	if got := Bandwidth(flat(5, 1), 8000); math.Abs(got-4000) > tolerance {
		t.Fatalf("bandwidth = %v, want 4000", got)
	}
	if got := Bandwidth(make([]float64, 5), 8000); got != 0 {
		t.Fatalf("silent bandwidth = %v", got)
	}
}
