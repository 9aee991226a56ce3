package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

var testFreqs = []float64{20, 100, 997, 1000, 4000, 12000, 23000}

func TestMagnitudeSquaredMatchesResponse(t *testing.T) {
	// Two-tap average and a resonant section with complex poles.
	for _, c := range []Coefficients{simpleLowpass(), {B0: 0.2, B1: 0.1, B2: -0.05, A1: -1.6, A2: 0.8}} {
		for _, f := range testFreqs {
			h := c.Response(f, 48000)
			want := real(h)*real(h) + imag(h)*imag(h)

			if got := c.MagnitudeSquared(f, 48000); !almostEqual(got, want, 1e-9*math.Max(1, want)) {
				t.Errorf("%+v at %v Hz: %v, want %v", c, f, got, want)
			}
		}
	}
}

func TestResponseOfPassthrough(t *testing.T) {
	c := passthrough()

	for _, f := range testFreqs {
		if h := c.Response(f, 44100); !almostEqual(cmplx.Abs(h), 1, 1e-12) || !almostEqual(cmplx.Phase(h), 0, 1e-12) {
			t.Fatalf("%v Hz: H = %v", f, h)
		}

		if db := c.MagnitudeDB(f, 44100); !almostEqual(db, 0, 1e-12) {
			t.Fatalf("%v Hz: %v dB", f, db)
		}
	}
}

func TestTwoTapAverageHasNyquistZero(t *testing.T) {
	c := simpleLowpass()

	if g := c.MagnitudeSquared(0, 48000); !almostEqual(g, 1, 1e-12) {
		t.Fatalf("DC gain² = %v", g)
	}

	if g := c.MagnitudeSquared(24000, 48000); !almostEqual(g, 0, 1e-12) {
		t.Fatalf("Nyquist gain² = %v", g)
	}
}

func TestChainMagnitudeIsSumOfSections(t *testing.T) {
	a := Coefficients{B0: 0.2, B1: 0.1, B2: -0.05, A1: -1.6, A2: 0.8}
	b := simpleLowpass()
	chain := NewChain([]Coefficients{a, b}, WithGain(0.5))

	for _, f := range []float64{50, 1000, 8000} {
		h := 0.5 * a.Response(f, 48000) * b.Response(f, 48000)
		want := 20 * math.Log10(cmplx.Abs(h))

		if got := chain.MagnitudeDB(f, 48000); !almostEqual(got, want, 1e-9) {
			t.Fatalf("%v Hz: %v dB, want %v", f, got, want)
		}
	}
}

func TestChainMagnitudeMatchesMeasuredGain(t *testing.T) {
	// Steady-state amplitude of a filtered sine equals the response.
	const (
		fs = 48000.0
		f  = 1000.0
		n  = 48000
	)

	chain := NewChain([]Coefficients{{B0: 0.2, B1: 0.1, B2: -0.05, A1: -1.6, A2: 0.8}})

	peak := 0.0
	for i := range n {
		y := chain.Process(math.Sin(2 * math.Pi * f * float64(i) / fs))
		if i > n/2 {
			peak = math.Max(peak, math.Abs(y))
		}
	}

	want := chain.MagnitudeDB(f, fs)
	if got := 20 * math.Log10(peak); !almostEqual(got, want, 0.05) {
		t.Fatalf("measured %v dB, response %v dB", got, want)
	}
}
