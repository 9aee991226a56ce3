// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]; its history is an explicit [State]
// value, and [Step] is the side-effect-free form of one update. Sections
// can be cascaded in a fixed order via [Chain].
//
// A Section filters exactly one channel. Callers create a fresh Section
// (or Chain) per channel and per analysis so that state never leaks.
package biquad
