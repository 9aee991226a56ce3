package fft

import "github.com/cwbudde/algo-mixcheck/dsp/spectrum"

// Spectrum is the complex output of one transform as split real and
// imaginary parts. Both slices have the same power-of-two length N; bin k
// corresponds to k*sampleRate/N for k < N/2.
type Spectrum struct {
	Re []float64
	Im []float64
}

// Len returns the transform size N.
func (s *Spectrum) Len() int {
	return len(s.Re)
}

// Magnitude returns sqrt(re^2 + im^2) for every bin.
func (s *Spectrum) Magnitude() []float64 {
	out := make([]float64, len(s.Re))
	spectrum.MagnitudeFromParts(out, s.Re, s.Im)

	return out
}

// Power returns re^2 + im^2 for every bin.
func (s *Spectrum) Power() []float64 {
	out := make([]float64, len(s.Re))
	spectrum.PowerFromParts(out, s.Re, s.Im)

	return out
}

// Phase returns atan2(im, re) for every bin.
func (s *Spectrum) Phase() []float64 {
	out := make([]float64, len(s.Re))
	spectrum.PhaseFromParts(out, s.Re, s.Im)

	return out
}

// BinFrequency returns the frequency of bin k at the given sample rate.
func (s *Spectrum) BinFrequency(k int, sampleRate float64) float64 {
	return spectrum.BinFrequency(k, sampleRate, len(s.Re))
}
