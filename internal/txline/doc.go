// Package txline provides the lossless transmission-line primitives that
// every other part of the matcher is built on.
//
// All lengths are expressed in wavelengths, so the electrical angle of a
// segment is simply 2π·length. The package works in the admittance domain
// because shunt stubs combine additively there:
//
//   - [TransformAdmittance]: admittance seen through a line segment
//   - [StubAdmittance]: input admittance of a short- or open-circuited stub
//   - [StubLengthForSusceptance]: closed-form inverse of the stub formula
//   - [GammaFromAdmittance], [VSWRFromGamma], [ReturnLossDB]: mismatch metrics
//
// Two calling conventions exist side by side. The length-based functions
// guard against sampling a stub singularity and return an error instead of
// silently producing ±Inf; the solver uses these. The angle-based *AtAngle
// variants are unguarded and let IEEE semantics propagate NaN/Inf through
// a frequency sweep one slot at a time, which is exactly what the sweep
// engine needs.
//
// # Thread Safety
//
// Everything in this package is a pure function over value arguments and
// is safe for concurrent use.
package txline
