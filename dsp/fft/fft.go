package fft

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync"
)

var (
	// ErrEmptyInput is returned for zero-length input.
	ErrEmptyInput = errors.New("fft: empty input")
	// ErrNotPowerOfTwo is returned when the input length is not a power of two.
	ErrNotPowerOfTwo = errors.New("fft: length is not a power of two")
)

type twiddles struct {
	cos []float64
	sin []float64
}

// Transformer computes radix-2 transforms and caches twiddle factors per
// size. The zero value is not usable; call NewTransformer.
type Transformer struct {
	cache map[int]twiddles
}

// NewTransformer returns a Transformer with an empty twiddle cache.
func NewTransformer() *Transformer {
	return &Transformer{cache: make(map[int]twiddles)}
}

var (
	defaultMu          sync.Mutex
	defaultTransformer = NewTransformer()
)

// Transform computes the forward FFT of x with the shared default Transformer.
func Transform(x []float64) (*Spectrum, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return defaultTransformer.Transform(x)
}

// Inverse computes the inverse FFT of s with the shared default Transformer.
func Inverse(s *Spectrum) ([]float64, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return defaultTransformer.Inverse(s)
}

// Transform computes the forward FFT of real input x. The input is not modified.
func (t *Transformer) Transform(x []float64) (*Spectrum, error) {
	if err := ValidateSize(len(x)); err != nil {
		return nil, err
	}

	s := &Spectrum{
		Re: append([]float64(nil), x...),
		Im: make([]float64, len(x)),
	}

	t.forward(s.Re, s.Im)

	return s, nil
}

// TransformComplex computes the forward FFT of (re, im) in place.
func (t *Transformer) TransformComplex(re, im []float64) error {
	if len(re) != len(im) {
		return fmt.Errorf("fft: real/imaginary length mismatch: %d != %d", len(re), len(im))
	}

	if err := ValidateSize(len(re)); err != nil {
		return err
	}

	t.forward(re, im)

	return nil
}

// Inverse computes the inverse FFT of s and returns the real part scaled
// by 1/N. The spectrum is not modified.
func (t *Transformer) Inverse(s *Spectrum) ([]float64, error) {
	if s == nil {
		return nil, ErrEmptyInput
	}

	n := len(s.Re)
	if len(s.Im) != n {
		return nil, fmt.Errorf("fft: real/imaginary length mismatch: %d != %d", n, len(s.Im))
	}

	if err := ValidateSize(n); err != nil {
		return nil, err
	}

	// IFFT(X) = conj(FFT(conj(X))) / N; only the real part is kept.
	re := append([]float64(nil), s.Re...)
	im := make([]float64, n)

	for i, v := range s.Im {
		im[i] = -v
	}

	t.forward(re, im)

	scale := 1 / float64(n)
	for i := range re {
		re[i] *= scale
	}

	return re, nil
}

func (t *Transformer) forward(re, im []float64) {
	n := len(re)
	if n == 1 {
		return
	}

	shift := 64 - uint(bits.TrailingZeros(uint(n)))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse64(uint64(i)) >> shift)
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	tw := t.twiddles(n)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := n / size

		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				wr := tw.cos[k*step]
				wi := tw.sin[k*step]

				i1 := start + k
				i2 := i1 + half

				tr := wr*re[i2] - wi*im[i2]
				ti := wr*im[i2] + wi*re[i2]

				re[i2] = re[i1] - tr
				im[i2] = im[i1] - ti
				re[i1] += tr
				im[i1] += ti
			}
		}
	}
}

// twiddles returns exp(-2*pi*i*k/n) for k in [0, n/2).
func (t *Transformer) twiddles(n int) twiddles {
	if tw, ok := t.cache[n]; ok {
		return tw
	}

	half := n / 2
	tw := twiddles{cos: make([]float64, half), sin: make([]float64, half)}

	for k := 0; k < half; k++ {
		theta := -2 * math.Pi * float64(k) / float64(n)
		tw.sin[k], tw.cos[k] = math.Sincos(theta)
	}

	t.cache[n] = tw

	return tw
}

// ValidateSize reports whether n is a usable transform length.
func ValidateSize(n int) error {
	if n == 0 {
		return ErrEmptyInput
	}

	if !IsPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	return nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

// ZeroPad returns a copy of x extended with zeros to length n. If x is
// already at least n samples long the copy is truncated to n.
func ZeroPad(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)

	return out
}
