package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mixcheck/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.RMSdB, -1) || !math.IsInf(s.PeakDB, -1) || !math.IsNaN(s.CrestFactorDB) {
		t.Fatalf("empty stats %+v", s)
	}
}

func TestCalculateSilence(t *testing.T) {
	s := Calculate(make([]float64, 100))
	if s.CrestFactor != 0 || !math.IsNaN(s.CrestFactorDB) || !math.IsInf(s.RMSdB, -1) {
		t.Fatalf("silence stats %+v", s)
	}
}

func TestCalculateSine(t *testing.T) {
	// 100 whole periods of a 480 Hz tone at 48 kHz.
	x := testutil.DeterministicSine(480, 48000, 0.5, 10000)

	s := Calculate(x)

	if math.Abs(s.RMS-0.5/math.Sqrt2) > 1e-9 {
		t.Fatalf("rms = %v", s.RMS)
	}
	if math.Abs(s.Peak-0.5) > 1e-9 {
		t.Fatalf("peak = %v", s.Peak)
	}
	if math.Abs(s.CrestFactorDB-20*math.Log10(math.Sqrt2)) > 1e-6 {
		t.Fatalf("crest factor = %v dB", s.CrestFactorDB)
	}
	if math.Abs(s.DC) > 1e-12 {
		t.Fatalf("dc = %v", s.DC)
	}
	if math.Abs(s.Variance-s.RMS*s.RMS) > 1e-9 {
		t.Fatalf("variance %v, rms^2 %v", s.Variance, s.RMS*s.RMS)
	}
}

func TestCalculateSquare(t *testing.T) {
	s := Calculate([]float64{1, -1, 1, -1})
	if s.RMS != 1 || s.Peak != 1 || s.CrestFactor != 1 || s.ZeroCrossings != 3 {
		t.Fatalf("square stats %+v", s)
	}
}

func TestHelpersMatchCalculate(t *testing.T) {
	x := testutil.DeterministicNoise(4, 0.7, 2000)
	s := Calculate(x)

	if math.Abs(RMS(x)-s.RMS) > 1e-12 || Peak(x) != s.Peak || math.Abs(CrestFactor(x)-s.CrestFactor) > 1e-12 {
		t.Fatalf("helpers disagree with Calculate")
	}
	if RMS(nil) != 0 || CrestFactor(make([]float64, 3)) != 0 {
		t.Fatal("degenerate helpers")
	}
}

func TestCalculateStereo(t *testing.T) {
	left := []float64{1, 1, 1, 1}
	right := []float64{-1, -1, -1, -1}

	s := CalculateStereo(left, right)
	if s.Left.RMS != 1 || s.Right.RMS != 1 || s.Mid.RMS != 0 {
		t.Fatalf("stereo stats %+v", s)
	}
}
