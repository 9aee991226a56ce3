package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultRolloff is the energy fraction used by Describe for Rolloff.
const DefaultRolloff = 0.85

// Shape holds descriptors of a one-sided magnitude spectrum.
type Shape struct {
	Centroid  float64 // Hz, magnitude-weighted mean frequency
	Spread    float64 // Hz, standard deviation around the centroid
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // Hz below which DefaultRolloff of the energy lies
	Bandwidth float64 // Hz, 3 dB width around the peak
	PeakHz    float64
}

// binFreq returns the frequency of bin i; the transform size is
// 2*(binCount-1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Describe computes all shape descriptors of magnitude, which holds bins
// 0 (DC) to Nyquist of a linear magnitude spectrum. A spectrum with fewer
// than two bins or without energy yields the zero Shape.
func Describe(magnitude []float64, sampleRate float64) Shape {
	n := len(magnitude)
	if n < 2 {
		return Shape{}
	}

	sum := floats.Sum(magnitude)
	if sum == 0 {
		return Shape{}
	}

	var s Shape

	s.Centroid = centroid(magnitude, sampleRate, sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, DefaultRolloff, floats.Dot(magnitude, magnitude))
	s.Bandwidth = Bandwidth(magnitude, sampleRate)
	s.PeakHz = binFreq(floats.MaxIdx(magnitude), sampleRate, n)

	return s
}

// Centroid returns sum(f_i * |X_i|) / sum(|X_i|) in Hz.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	return centroid(magnitude, sampleRate, floats.Sum(magnitude))
}

func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	n := len(magnitude)
	if sumMag == 0 {
		return 0
	}

	weighted := 0.0
	for i, v := range magnitude {
		weighted += binFreq(i, sampleRate, n) * v
	}

	return weighted / sumMag
}

func spread(magnitude []float64, sampleRate, cent, sumMag float64) float64 {
	n := len(magnitude)

	weighted := 0.0
	for i, v := range magnitude {
		d := binFreq(i, sampleRate, n) - cent
		weighted += d * d * v
	}

	return math.Sqrt(weighted / sumMag)
}

// Flatness returns exp(mean(log|X|)) / mean(|X|) over bins 1..N-1. The DC
// bin is excluded; any zero bin makes the flatness 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	bins := magnitude[1:]

	mean := floats.Sum(bins) / float64(len(bins))
	if mean == 0 {
		return 0
	}

	logSum := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		logSum += math.Log(v)
	}

	return math.Exp(logSum/float64(len(bins))) / mean
}

// Rolloff returns the frequency below which the fraction percent (0..1)
// of the energy sum(|X|^2) lies.
func Rolloff(magnitude []float64, sampleRate, percent float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}

	return rolloff(magnitude, sampleRate, percent, floats.Dot(magnitude, magnitude))
}

func rolloff(magnitude []float64, sampleRate, percent, total float64) float64 {
	n := len(magnitude)
	if total == 0 {
		return 0
	}

	threshold := percent * total
	cum := 0.0

	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}

// Bandwidth returns the width in Hz between the points left and right of
// the spectral peak where the magnitude falls to peak/sqrt(2), linearly
// interpolated between bins.
func Bandwidth(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := floats.MaxIdx(magnitude)
	peak := magnitude[peakBin]

	if peak <= 0 {
		return 0
	}

	threshold := peak / math.Sqrt2

	lower := binFreq(0, sampleRate, n)
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpFreq(i-1, i, magnitude[i-1], magnitude[i], threshold, sampleRate, n)
			break
		}
	}

	upper := binFreq(n-1, sampleRate, n)
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpFreq(i, i+1, magnitude[i], magnitude[i+1], threshold, sampleRate, n)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

func interpFreq(lo, hi int, magLo, magHi, threshold, sampleRate float64, n int) float64 {
	fLo := binFreq(lo, sampleRate, n)
	fHi := binFreq(hi, sampleRate, n)

	d := magHi - magLo
	if d == 0 {
		return (fLo + fHi) / 2
	}

	return fLo + (threshold-magLo)/d*(fHi-fLo)
}
