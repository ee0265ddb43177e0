package match

import (
	"math"

	"github.com/san-kum/stubmatch/internal/txline"
)

// GammaLocus traces the reflection-plane path a solution's network walks
// from the load to the source: along the d1 segment, up the first stub's
// susceptance ramp, along the d2 segment, up the second stub's ramp.
// Line segments sweep their length from 0, stub ramps scale the final
// susceptance from 0 to full, so consecutive points connect smoothly on
// a Smith chart. steps sets the sample count per segment.
//
// A solution whose stub length sits on a singularity has an unbounded
// ramp endpoint and cannot be traced; that is the only error case beyond
// input validation.
func GammaLocus(sol Solution, load Load, p Params, steps int) ([]complex128, error) {
	if err := load.Validate(); err != nil {
		return nil, err
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if steps < 1 {
		steps = 1
	}

	y0 := 1 / p.Z0
	y0s := 1 / p.Zs
	yl := load.Admittance()

	b1, err := txline.StubSusceptance(y0s, sol.L1, p.Stub)
	if err != nil {
		return nil, err
	}
	b2, err := txline.StubSusceptance(y0s, sol.L2, p.Stub)
	if err != nil {
		return nil, err
	}

	locus := make([]complex128, 0, 4*steps+3)
	locus = append(locus, txline.GammaFromAdmittance(yl, y0))

	for k := 1; k <= steps; k++ {
		y := txline.TransformAtAngle(yl, y0, 2*math.Pi*p.D1*float64(k)/float64(steps))
		locus = append(locus, txline.GammaFromAdmittance(y, y0))
	}

	y1 := txline.TransformAtAngle(yl, y0, 2*math.Pi*p.D1)
	for k := 0; k <= steps; k++ {
		y := y1 + complex(0, b1*float64(k)/float64(steps))
		locus = append(locus, txline.GammaFromAdmittance(y, y0))
	}

	node1 := y1 + complex(0, b1)
	for k := 1; k <= steps; k++ {
		y := txline.TransformAtAngle(node1, y0, 2*math.Pi*p.D2*float64(k)/float64(steps))
		locus = append(locus, txline.GammaFromAdmittance(y, y0))
	}

	y2 := txline.TransformAtAngle(node1, y0, 2*math.Pi*p.D2)
	for k := 0; k <= steps; k++ {
		y := y2 + complex(0, b2*float64(k)/float64(steps))
		locus = append(locus, txline.GammaFromAdmittance(y, y0))
	}

	return locus, nil
}
