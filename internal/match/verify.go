package match

import (
	"math/cmplx"

	"github.com/san-kum/stubmatch/internal/txline"
)

// NodeAdmittances forward-simulates the network a solution realizes:
// load → d1 → stub 1 → d2 → stub 2, all in admittance domain. It returns
// the admittance just after the first stub and at the source reference
// plane after the second.
func NodeAdmittances(sol Solution, load Load, p Params) (node1, source complex128, err error) {
	y0 := 1 / p.Z0
	y0s := 1 / p.Zs

	y1, err := txline.TransformAdmittance(load.Admittance(), y0, p.D1)
	if err != nil {
		return 0, 0, err
	}
	b1, err := txline.StubSusceptance(y0s, sol.L1, p.Stub)
	if err != nil {
		return 0, 0, err
	}
	node1 = y1 + complex(0, b1)

	y2, err := txline.TransformAdmittance(node1, y0, p.D2)
	if err != nil {
		return 0, 0, err
	}
	b2, err := txline.StubSusceptance(y0s, sol.L2, p.Stub)
	if err != nil {
		return 0, 0, err
	}
	return node1, y2 + complex(0, b2), nil
}

// InputAdmittance returns the admittance the source sees for a solution.
func InputAdmittance(sol Solution, load Load, p Params) (complex128, error) {
	_, source, err := NodeAdmittances(sol, load, p.Normalized())
	return source, err
}

// Verify recomputes the reflection a solution actually achieves and
// derives VSWR and return loss from it. A |Γ| above the precision-scaled
// gate flags the result as a mismatch; the result is still returned in
// full so a defective solution is reported rather than suppressed.
func Verify(sol Solution, load Load, p Params) (VerificationResult, error) {
	if err := load.Validate(); err != nil {
		return VerificationResult{}, err
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return VerificationResult{}, err
	}

	_, yin, err := NodeAdmittances(sol, load, p)
	if err != nil {
		return VerificationResult{}, err
	}

	y0 := 1 / p.Z0
	gamma := txline.GammaFromAdmittance(yin, y0)
	mag := cmplx.Abs(gamma)
	return VerificationResult{
		Zin:          txline.ImpedanceFromAdmittance(yin),
		Gamma:        gamma,
		GammaMag:     mag,
		VSWR:         txline.VSWRFromGamma(mag),
		ReturnLossDB: txline.ReturnLossDB(mag),
		Matched:      mag <= matchGate(p.Precision),
	}, nil
}

// matchGate scales the length precision to a reflection-magnitude
// acceptance bound, floored so an aggressive precision setting never
// demands better than the refinement can deliver.
func matchGate(precision float64) float64 {
	g := 100 * precision
	if g < 1e-6 {
		g = 1e-6
	}
	return g
}
