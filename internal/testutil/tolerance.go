package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first index where got and want
// differ by more than eps, or when their lengths differ.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d values, want %d", len(got), len(want))
	}

	for i, g := range got {
		if d := math.Abs(g - want[i]); d > eps {
			t.Fatalf("[%d] = %v, want %v (|diff| %.3g > %.3g)", i, g, want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want a finite value", i, v)
		}
	}
}

// MaxSpectrumDiff returns the largest complex distance between a split
// re/im spectrum and a reference spectrum, with the bin where it occurs.
func MaxSpectrumDiff(re, im []float64, want []complex128) (float64, int, error) {
	if len(re) != len(want) || len(im) != len(want) {
		return 0, 0, fmt.Errorf("spectrum has %d/%d bins, reference %d", len(re), len(im), len(want))
	}

	worst, bin := 0.0, 0
	for k, w := range want {
		if d := cmplx.Abs(complex(re[k], im[k]) - w); d > worst {
			worst, bin = d, k
		}
	}

	return worst, bin, nil
}
