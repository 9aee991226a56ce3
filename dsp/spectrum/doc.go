// Package spectrum provides spectrum-domain helpers on split real and
// imaginary parts: magnitude, power and phase kernels plus deterministic
// frequency binning.
//
// The package does not implement an FFT itself; see dsp/fft.
package spectrum
