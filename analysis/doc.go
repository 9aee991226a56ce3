// Package analysis runs every measurement over one decoded stereo signal
// and collects the results in a Report.
//
// Stages run in a fixed order: validate, loudness, true peak, stereo,
// spectral and time statistics. A failure stops the analysis and is
// returned as a *StageError naming the stage, so batch callers can record
// it and move on to the next file.
package analysis
