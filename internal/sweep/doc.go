// Package sweep re-evaluates a fixed matching network across a frequency
// grid and derives bandwidth figures from the result.
//
//   - [Run]: computes Γ(f), |S11|, VSWR and return loss over a [Grid] by
//     rescaling every electrical length by f/f0 and re-running the full
//     transform chain in whole-array passes
//   - [Result]: holds the aligned sweep arrays plus lazily computed,
//     cached bandwidth metrics (3 dB, 10 dB return loss, VSWR<2,
//     fractional bandwidth, loaded Q, unwrapped phase, group delay)
//   - [Rank]: orders swept solutions by a bandwidth criterion
//
// Samples whose electrical length lands on a stub singularity come out
// as NaN in that slot only; a sweep never aborts mid-array. Metrics
// answer a missing qualifying band with a 0 Hz sentinel (and loaded Q
// with +Inf) rather than an error.
//
// # Thread Safety
//
// Result is NOT safe for concurrent use: metric accessors memoize into
// the receiver on first call. Share a Result only after the metrics you
// need have been computed, or confine it to one goroutine.
package sweep
