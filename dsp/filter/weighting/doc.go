// Package weighting provides the ITU-R BS.1770-4 K-weighting filter used by
// loudness measurement.
//
// K-weighting is a two-stage cascade: the RLB high-pass (about 38 Hz) that
// removes sub-audible energy, followed by a high-frequency shelf
// (about +4 dB above 1.7 kHz) that models the acoustic effect of the head.
// Both stages are designed from their analog prototypes via tan(pi*f0/fs),
// so the published 48 kHz coefficients are reproduced and other sample
// rates stay accurate.
//
// The returned filters carry per-channel state. Use one [K] per channel per
// analysis.
package weighting
