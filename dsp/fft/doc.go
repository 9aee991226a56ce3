// Package fft implements the radix-2 transform engine used by the
// measurement packages: an iterative Cooley-Tukey FFT over real input,
// its inverse, and a short-time Fourier transform that slides windowed
// frames across a signal.
//
// Input lengths must be powers of two and are never padded implicitly.
// Twiddle factors are cached per size inside a [Transformer]; a
// Transformer is not safe for concurrent use, so each goroutine that
// transforms in parallel owns its own. The package-level [Transform] and
// [Inverse] share a mutex-guarded default Transformer.
package fft
