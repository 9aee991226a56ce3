package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
// All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// PhaseFromParts computes arg(X[k]) in radians into dst.
func PhaseFromParts(dst, re, im []float64) {
	for i := range dst {
		dst[i] = math.Atan2(im[i], re[i])
	}
}

// BinWidth returns the frequency spacing of an fftSize-point transform.
func BinWidth(sampleRate float64, fftSize int) float64 {
	if fftSize <= 0 {
		return 0
	}
	return sampleRate / float64(fftSize)
}

// BinFrequency returns the center frequency of bin k.
func BinFrequency(k int, sampleRate float64, fftSize int) float64 {
	return float64(k) * BinWidth(sampleRate, fftSize)
}

// BinIndex maps freqHz to floor(freqHz / binWidth), clamped to [0, fftSize/2].
func BinIndex(freqHz, sampleRate float64, fftSize int) int {
	w := BinWidth(sampleRate, fftSize)
	if w <= 0 || math.IsNaN(freqHz) || freqHz <= 0 {
		return 0
	}

	k := int(math.Floor(freqHz / w))
	if k > fftSize/2 {
		return fftSize / 2
	}
	return k
}
