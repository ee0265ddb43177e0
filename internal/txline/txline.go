package txline

import (
	"math"
	"math/cmplx"
	"strings"
)

// StubKind selects the stub termination.
type StubKind string

const (
	// StubShort is a short-circuited stub: Y = -j·Y0s·cot(2πl).
	StubShort StubKind = "short"
	// StubOpen is an open-circuited stub: Y = +j·Y0s·tan(2πl).
	StubOpen StubKind = "open"
)

// Valid reports whether k names a supported termination.
func (k StubKind) Valid() bool {
	return k == StubShort || k == StubOpen
}

// ParseStubKind parses a stub kind name as it appears in scenario files
// and on the command line. Matching is case-insensitive.
func ParseStubKind(s string) (StubKind, error) {
	k := StubKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrUnknownStubKind
	}
	return k, nil
}

// TransformAdmittance returns the admittance seen looking into a lossless
// line of characteristic admittance y0 terminated by y, with the segment
// length given in wavelengths:
//
//	Yin = y0 · (y·cos βl + j·y0·sin βl) / (y0·cos βl + j·y·sin βl),  βl = 2π·length
//
// When the denominator is degenerate (quarter-wave segment into a near-open)
// the quarter-wave limiting form Yin = y0²/y is substituted; if y itself is
// near zero the transform is undefined and ErrDegenerateTransform is returned.
func TransformAdmittance(y complex128, y0 float64, length float64) (complex128, error) {
	theta := 2 * math.Pi * length
	c, s := math.Cos(theta), math.Sin(theta)

	num := y*complex(c, 0) + complex(0, y0*s)
	den := complex(y0*c, 0) + complex(0, s)*y
	if cmplx.Abs(den) < singularEps {
		if cmplx.Abs(y) < singularEps {
			return 0, ErrDegenerateTransform
		}
		return complex(y0*y0, 0) / y, nil
	}
	return complex(y0, 0) * num / den, nil
}

// StubAdmittance returns the purely reactive input admittance of a stub of
// characteristic admittance y0s and the given length in wavelengths.
// Lengths within tolerance of the termination's singularity (multiples of
// 0.5λ for short stubs, odd multiples of 0.25λ for open stubs) yield
// ErrSingularLength.
func StubAdmittance(y0s float64, length float64, kind StubKind) (complex128, error) {
	b, err := StubSusceptance(y0s, length, kind)
	if err != nil {
		return 0, err
	}
	return complex(0, b), nil
}

// StubSusceptance is StubAdmittance restricted to its imaginary part.
func StubSusceptance(y0s float64, length float64, kind StubKind) (float64, error) {
	theta := 2 * math.Pi * length
	switch kind {
	case StubShort:
		cot, err := Cot(theta)
		if err != nil {
			return 0, err
		}
		return -y0s * cot, nil
	case StubOpen:
		tan, err := Tan(theta)
		if err != nil {
			return 0, err
		}
		return y0s * tan, nil
	default:
		return 0, ErrUnknownStubKind
	}
}

// StubLengthForSusceptance inverts the stub formula: it returns the
// principal length in [0, 0.5) whose stub susceptance equals b.
//
//	short: -y0s·cot(2πl) = b  =>  l = (π/2 + atan(b/y0s)) / 2π
//	open:   y0s·tan(2πl) = b  =>  l = atan(b/y0s) / 2π   (mod 0.5)
func StubLengthForSusceptance(y0s float64, b float64, kind StubKind) (float64, error) {
	switch kind {
	case StubShort:
		return (math.Pi/2 + math.Atan(b/y0s)) / (2 * math.Pi), nil
	case StubOpen:
		return ReduceHalfWave(math.Atan(b/y0s) / (2 * math.Pi)), nil
	default:
		return 0, ErrUnknownStubKind
	}
}

// TransformAtAngle is the unguarded form of TransformAdmittance taking the
// electrical angle βl directly. Degenerate inputs follow IEEE semantics:
// a singular denominator produces Inf/NaN in that result only, which is the
// propagation behavior the frequency sweep relies on.
func TransformAtAngle(y complex128, y0 float64, theta float64) complex128 {
	c, s := math.Cos(theta), math.Sin(theta)
	num := y*complex(c, 0) + complex(0, y0*s)
	den := complex(y0*c, 0) + complex(0, s)*y
	return complex(y0, 0) * num / den
}

// StubSusceptanceAtAngle is the unguarded form of StubSusceptance taking
// the electrical angle directly. Exact singularities yield ±Inf.
func StubSusceptanceAtAngle(y0s float64, theta float64, kind StubKind) float64 {
	if kind == StubOpen {
		return y0s * math.Tan(theta)
	}
	return -y0s * math.Cos(theta) / math.Sin(theta)
}

// GammaFromAdmittance returns the reflection coefficient at a node with
// input admittance y on a line of characteristic admittance y0. The
// admittance form (y0-y)/(y0+y) is used so that a perfect open (y = 0)
// yields exactly +1 instead of an Inf/Inf artifact.
func GammaFromAdmittance(y complex128, y0 float64) complex128 {
	return (complex(y0, 0) - y) / (complex(y0, 0) + y)
}

// ImpedanceFromAdmittance inverts an admittance, mapping a perfect open
// (y = 0) to a real +Inf impedance.
func ImpedanceFromAdmittance(y complex128) complex128 {
	if y == 0 {
		return complex(math.Inf(1), 0)
	}
	return 1 / y
}

// VSWRFromGamma derives the voltage standing-wave ratio from |Γ|.
// Magnitudes at or above 1 (total reflection) map to +Inf, keeping the
// VSWR ≥ 1 invariant even when rounding pushes |Γ| a hair past unity.
func VSWRFromGamma(mag float64) float64 {
	if mag >= 1 {
		return math.Inf(1)
	}
	return (1 + mag) / (1 - mag)
}

// ReturnLossDB derives return loss in dB from |Γ|. A perfect match
// (Γ = 0) has infinite return loss.
func ReturnLossDB(mag float64) float64 {
	if mag == 0 {
		return math.Inf(1)
	}
	return -20 * math.Log10(mag)
}
