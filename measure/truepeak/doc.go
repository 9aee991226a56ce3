// Package truepeak estimates the true peak of a sampled signal: the peak
// of its band-limited continuous reconstruction, measured by 4x
// oversampling as described in ITU-R BS.1770-4 Annex 2.
//
// The discrete sample peak under-reads signals whose waveform overshoots
// between samples. The detector interpolates the signal, reports the
// largest absolute value in dBTP and, as a separate diagnostic, counts the
// discrete samples at or above a clipping threshold.
package truepeak
