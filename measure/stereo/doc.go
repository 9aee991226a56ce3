// Package stereo measures the stereo image of a fully buffered channel
// pair: Pearson correlation, side-to-mid width and left/right balance.
//
// Degenerate input is data, not an error: silent or constant channels
// have zero correlation, a mono signal has zero width and silence is
// centred.
package stereo
