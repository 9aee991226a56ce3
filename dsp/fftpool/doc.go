// Package fftpool runs independent FFTs on a small, bounded set of worker
// goroutines.
//
// Tasks travel to the workers over a channel and results come back
// through a correlation table keyed by task ID, so completion order does
// not matter. Each worker owns its own twiddle cache; nothing mutable is
// shared between workers.
//
// The pool never makes a transform fail that could have succeeded
// synchronously: when a task times out, the queue is full, the pool is
// stopped or a worker panics, the caller computes the transform itself.
package fftpool
