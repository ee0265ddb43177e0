// Package match implements the double-stub matching engine: the
// stub-length solver, forbidden-region diagnostics and solution
// post-processing (deduplication and verification).
//
// The solving pipeline:
//
//   - [Solve]: grid scan plus bracketed bisection over the first stub
//     length, closed-form inversion for the second
//   - [Diagnose]: reachable-conductance analysis for solves that come
//     back empty
//   - [Dedupe]: merges root pairs realizing the same electrical state
//   - [Verify]: recomputes the reflection a solution actually achieves
//
// # Example
//
//	load := match.Load{Z: complex(38.9, -26.7)}
//	sols, rep, err := match.Solve(load, match.DefaultParams())
//
// # Thread Safety
//
// All functions are pure over value inputs; they may be called from any
// number of goroutines concurrently.
package match
