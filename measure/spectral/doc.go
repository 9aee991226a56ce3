// Package spectral measures how energy is distributed over a fixed set of
// frequency bands.
//
// The stereo input is mixed to mono, analysed with a 4096-point Hann STFT
// at 75% overlap, and the frame magnitudes are averaged. Each band sums the
// squared averaged magnitude over its bins; the result is reported as an
// RMS level in dB and as a share of the total energy. Shares always add
// up to 100% unless the signal is silent.
package spectral
