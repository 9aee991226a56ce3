package weighting

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mixcheck/dsp/filter/biquad"
)

// Analog prototype parameters of the BS.1770-4 K-weighting stages.
const (
	shelfF0   = 1681.974450955533
	shelfGain = 3.999843853973347 // dB
	shelfQ    = 0.7071752369554196
	shelfVbEx = 0.4996667741545416

	highpassF0 = 38.13547087602444
	highpassQ  = 0.5003270373238773
)

// KCoefficients returns the RLB high-pass and the high-shelf coefficients
// for sampleRate. The high-pass numerator is left unnormalised (1, -2, 1)
// as in the BS.1770-4 reference table.
func KCoefficients(sampleRate float64) (highpass, shelf biquad.Coefficients) {
	k := math.Tan(math.Pi * shelfF0 / sampleRate)
	vh := math.Pow(10, shelfGain/20)
	vb := math.Pow(vh, shelfVbEx)

	a0 := 1 + k/shelfQ + k*k
	shelf = biquad.Coefficients{
		B0: (vh + vb*k/shelfQ + k*k) / a0,
		B1: 2 * (k*k - vh) / a0,
		B2: (vh - vb*k/shelfQ + k*k) / a0,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/shelfQ + k*k) / a0,
	}

	k = math.Tan(math.Pi * highpassF0 / sampleRate)
	a0 = 1 + k/highpassQ + k*k
	highpass = biquad.Coefficients{
		B0: 1,
		B1: -2,
		B2: 1,
		A1: 2 * (k*k - 1) / a0,
		A2: (1 - k/highpassQ + k*k) / a0,
	}

	return highpass, shelf
}

// K is a K-weighting filter for one channel: high-pass, then shelf.
type K struct {
	chain *biquad.Chain
}

// NewK returns a K-weighting filter with zero state.
//
// Panics if sampleRate <= 0.
func NewK(sampleRate float64) *K {
	if sampleRate <= 0 {
		panic(fmt.Sprintf("weighting: sample rate must be positive: %v", sampleRate))
	}

	hp, shelf := KCoefficients(sampleRate)

	return &K{chain: biquad.NewChain([]biquad.Coefficients{hp, shelf})}
}

// Process filters one sample.
func (k *K) Process(x float64) float64 {
	return k.chain.Process(x)
}

// Apply filters ch into a new buffer. The filter state continues from
// previous calls; ch is not modified.
func (k *K) Apply(ch []float64) []float64 {
	return k.chain.ProcessBuffer(ch)
}

// Reset clears the filter state.
func (k *K) Reset() {
	k.chain.Reset()
}

// MagnitudeDB returns the K-weighting magnitude response at freqHz.
func (k *K) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return k.chain.MagnitudeDB(freqHz, sampleRate)
}

// ApplyStereo K-weights both channels with two independent filters.
func ApplyStereo(left, right []float64, sampleRate float64) (wl, wr []float64) {
	return NewK(sampleRate).Apply(left), NewK(sampleRate).Apply(right)
}
