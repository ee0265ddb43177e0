package txline

import "math"

// singularEps bounds how close |sin| or |cos| may get to zero before the
// corresponding cot/tan is treated as singular rather than merely large.
const singularEps = 1e-12

// Cot returns cos(x)/sin(x), or ErrSingularLength when x is within
// tolerance of a multiple of π where the cotangent is unbounded.
func Cot(x float64) (float64, error) {
	s := math.Sin(x)
	if math.Abs(s) < singularEps {
		return 0, ErrSingularLength
	}
	return math.Cos(x) / s, nil
}

// Tan returns tan(x), or ErrSingularLength when x is within tolerance of
// an odd multiple of π/2.
func Tan(x float64) (float64, error) {
	c := math.Cos(x)
	if math.Abs(c) < singularEps {
		return 0, ErrSingularLength
	}
	return math.Sin(x) / c, nil
}

// ReduceHalfWave reduces a length in wavelengths to its principal value in
// [0, 0.5). Stub and line behavior repeats every half wavelength, so this
// is the canonical form for reporting lengths.
func ReduceHalfWave(length float64) float64 {
	l := math.Mod(length, 0.5)
	if l < 0 {
		l += 0.5
	}
	// Mod can return the modulus itself for inputs a hair below a period
	// boundary; fold that back to zero.
	if l >= 0.5 {
		l = 0
	}
	return l
}
