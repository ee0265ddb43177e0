package match

import (
	"fmt"
	"math"

	"github.com/san-kum/stubmatch/internal/txline"
)

// Params fixes the geometry of the matching network. All lengths are in
// wavelengths at the design frequency; impedances are in ohms. A Params
// value is immutable by convention: computations take it by value and
// never write back.
type Params struct {
	Z0            float64         // main-line characteristic impedance
	Zs            float64         // stub characteristic impedance
	D1            float64         // load to first stub
	D2            float64         // first stub to second stub
	Stub          txline.StubKind // termination of both stubs
	Precision     float64         // root-refinement tolerance (wavelengths)
	MaxStubLength float64         // lengths at or beyond this are non-physical
	GridSamples   int             // objective samples per 0.5λ period
}

// DefaultParams returns the reference geometry: 50 Ω line and stubs,
// d1 = 0.07λ, d2 = 0.375λ, short-circuited stubs.
func DefaultParams() Params {
	return Params{
		Z0:            50,
		Zs:            50,
		D1:            0.07,
		D2:            0.375,
		Stub:          txline.StubShort,
		Precision:     1e-8,
		MaxStubLength: 0.5,
		GridSamples:   512,
	}
}

// Normalized fills zero-valued tuning knobs with their defaults so a
// caller only has to spell the geometry. The geometry fields themselves
// are never defaulted.
func (p Params) Normalized() Params {
	if p.Precision == 0 {
		p.Precision = 1e-8
	}
	if p.MaxStubLength == 0 {
		p.MaxStubLength = 0.5
	}
	if p.GridSamples == 0 {
		p.GridSamples = 512
	}
	return p
}

// Validate checks the parameter ranges of the error taxonomy: positive
// finite impedances, d1 ≥ 0, non-degenerate d2, usable tolerance and
// search bounds.
func (p Params) Validate() error {
	if !(p.Z0 > 0) || math.IsInf(p.Z0, 0) {
		return fmt.Errorf("%w: Z0 must be positive and finite, got %v", ErrInvalidParams, p.Z0)
	}
	if !(p.Zs > 0) || math.IsInf(p.Zs, 0) {
		return fmt.Errorf("%w: Zs must be positive and finite, got %v", ErrInvalidParams, p.Zs)
	}
	if p.D1 < 0 || math.IsNaN(p.D1) || math.IsInf(p.D1, 0) {
		return fmt.Errorf("%w: d1 must be finite and non-negative, got %v", ErrInvalidParams, p.D1)
	}
	if !(p.D2 > 0) || math.IsInf(p.D2, 0) {
		return fmt.Errorf("%w: d2 must be positive and finite, got %v", ErrInvalidParams, p.D2)
	}
	if math.Abs(math.Sin(2*math.Pi*p.D2)) < 1e-9 {
		return fmt.Errorf("%w: d2 = %v", ErrDegenerateSpacing, p.D2)
	}
	if !p.Stub.Valid() {
		return fmt.Errorf("%w: %v", txline.ErrUnknownStubKind, p.Stub)
	}
	if !(p.Precision > 0) || p.Precision > 1e-2 {
		return fmt.Errorf("%w: precision must be in (0, 1e-2], got %v", ErrInvalidParams, p.Precision)
	}
	if !(p.MaxStubLength > 0) {
		return fmt.Errorf("%w: max stub length must be positive, got %v", ErrInvalidParams, p.MaxStubLength)
	}
	if p.GridSamples < 8 {
		return fmt.Errorf("%w: grid resolution too coarse (%d samples)", ErrInvalidParams, p.GridSamples)
	}
	return nil
}

// Load is a passive load impedance in ohms.
type Load struct {
	Z complex128
}

// Validate rejects non-physical loads: negative resistance, zero
// magnitude, NaN or Inf components.
func (l Load) Validate() error {
	re, im := real(l.Z), imag(l.Z)
	if math.IsNaN(re) || math.IsNaN(im) || math.IsInf(re, 0) || math.IsInf(im, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLoad, l.Z)
	}
	if re < 0 {
		return fmt.Errorf("%w: negative resistance %v", ErrInvalidLoad, re)
	}
	if l.Z == 0 {
		return fmt.Errorf("%w: zero impedance", ErrInvalidLoad)
	}
	return nil
}

// Admittance returns 1/Z.
func (l Load) Admittance() complex128 {
	return 1 / l.Z
}

// Solution is an accepted stub-length pair, each length reduced to its
// principal value in [0, 0.5λ).
type Solution struct {
	L1 float64
	L2 float64

	// NonPhysical marks a pair whose raw length reached MaxStubLength.
	// Such pairs are excluded from solver output and surface in the
	// Report instead.
	NonPhysical bool
}

// RootOrigin records how a candidate first-stub root was found.
type RootOrigin string

const (
	OriginBracket RootOrigin = "bracket"
	OriginSeed    RootOrigin = "analytic seed"
)

// CandidateRoot is a refined first-stub length, tagged with the
// sign-change interval it was bracketed in (Lo == Hi for exact grid hits
// and seed roots).
type CandidateRoot struct {
	L1     float64
	Origin RootOrigin
	Lo, Hi float64
}

// DroppedCandidate records a candidate the solver had to give up on.
type DroppedCandidate struct {
	Lo, Hi float64
	Err    error
}

// Report carries solver bookkeeping: accepted candidates, dropped
// brackets and length-bound rejections. A populated Dropped or
// NonPhysical slice is diagnostic, never fatal.
type Report struct {
	Candidates  []CandidateRoot
	Dropped     []DroppedCandidate
	NonPhysical []Solution
}

// VerificationResult is the recomputed state of a matched network at the
// source reference plane. Every field is always populated.
type VerificationResult struct {
	Zin          complex128
	Gamma        complex128
	GammaMag     float64
	VSWR         float64
	ReturnLossDB float64

	// Matched reports |Γ| at or below the precision-scaled gate. A false
	// value on a solver-produced solution indicates a solver or
	// deduplication defect and must be surfaced, not hidden.
	Matched bool
}
