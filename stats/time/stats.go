package time

import "math"

// Stats holds time-domain statistics of one channel. Level fields in dB
// are -Inf for silence; the crest factor of silence is 0, and NaN in dB.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakDB        float64
	CrestFactor   float64 // Peak / RMS
	CrestFactorDB float64
	ZeroCrossings int
	Variance      float64 // population variance
}

func ampToDB(v float64) float64 {
	a := math.Abs(v)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics in a single pass, with Welford's
// update for the variance.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakDB: math.Inf(-1), CrestFactorDB: math.NaN()}
	}

	var (
		mean, m2, sumSq, peak float64
		zc                    int
	)

	for i, x := range signal {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))

		if i > 0 && signal[i-1]*x < 0 {
			zc++
		}
	}

	rms := math.Sqrt(sumSq / float64(n))

	s := Stats{
		Length:        n,
		DC:            mean,
		RMS:           rms,
		RMSdB:         ampToDB(rms),
		Peak:          peak,
		PeakDB:        ampToDB(peak),
		ZeroCrossings: zc,
		Variance:      m2 / float64(n),
	}

	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactorDB = 20 * math.Log10(s.CrestFactor)
	} else {
		s.CrestFactorDB = math.NaN()
	}

	return s
}

// RMS returns the root-mean-square of the signal, 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, x := range signal {
		sum += x * x
	}

	return math.Sqrt(sum / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	peak := 0.0
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// CrestFactor returns Peak / RMS, 0 for silence.
func CrestFactor(signal []float64) float64 {
	rms := RMS(signal)
	if rms == 0 {
		return 0
	}

	return Peak(signal) / rms
}

// StereoStats holds per-channel and mid-channel statistics.
type StereoStats struct {
	Left  Stats
	Right Stats
	Mid   Stats // (L+R)/2
}

// CalculateStereo computes statistics of both channels and of their mid
// signal. Channels of different length are truncated to the shorter one
// for the mid signal.
func CalculateStereo(left, right []float64) StereoStats {
	mid := make([]float64, min(len(left), len(right)))
	for i := range mid {
		mid[i] = 0.5 * (left[i] + right[i])
	}

	return StereoStats{
		Left:  Calculate(left),
		Right: Calculate(right),
		Mid:   Calculate(mid),
	}
}
