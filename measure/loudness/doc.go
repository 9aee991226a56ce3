// Package loudness measures programme loudness per ITU-R BS.1770-4 and
// EBU R128: integrated loudness with absolute and relative gating,
// short-term and momentary loudness, and loudness range (EBU Tech 3342).
//
// Analysis works on a fully buffered stereo pair. Each channel is
// K-weighted by its own filter, partitioned into 400 ms blocks with a
// 100 ms hop, and the block energies are gated and averaged.
// Degenerate input is reported as data: silence yields -Inf LUFS and an
// LRA of 0.
package loudness
