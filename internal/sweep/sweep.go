package sweep

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/txline"
)

// Grid is a linear frequency grid in hertz. Center is the design
// frequency the network's wavelength-denominated lengths refer to; it
// does not have to lie inside [Start, Stop].
type Grid struct {
	Center float64
	Start  float64
	Stop   float64
	Points int
}

// Validate rejects non-physical ranges at the boundary: start not below
// stop, non-positive frequencies, fewer than two points, NaN or Inf.
func (g Grid) Validate() error {
	for _, f := range []float64{g.Center, g.Start, g.Stop} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite frequency %v", ErrInvalidGrid, f)
		}
	}
	if g.Center <= 0 {
		return fmt.Errorf("%w: center frequency %v Hz", ErrInvalidGrid, g.Center)
	}
	if g.Start <= 0 {
		return fmt.Errorf("%w: start frequency %v Hz", ErrInvalidGrid, g.Start)
	}
	if g.Start >= g.Stop {
		return fmt.Errorf("%w: start %v Hz not below stop %v Hz", ErrInvalidGrid, g.Start, g.Stop)
	}
	if g.Points < 2 {
		return fmt.Errorf("%w: %d points", ErrInvalidGrid, g.Points)
	}
	return nil
}

// Frequencies materializes the grid, endpoints included, strictly
// increasing.
func (g Grid) Frequencies() []float64 {
	fs := make([]float64, g.Points)
	step := (g.Stop - g.Start) / float64(g.Points-1)
	for i := range fs {
		fs[i] = g.Start + float64(i)*step
	}
	fs[g.Points-1] = g.Stop
	return fs
}

// Result holds one solution's response over a frequency grid. All slices
// share length and are aligned index-for-index with Frequencies. The
// arrays are computed once by [Run] and never mutated; bandwidth metrics
// memoize into the unexported cache on first access.
type Result struct {
	F0           float64
	Frequencies  []float64
	Gamma        []complex128
	S11Mag       []float64
	VSWR         []float64
	ReturnLossDB []float64

	memo resultMemo
}

type resultMemo struct {
	bw3, bw10, bwV2             float64
	haveBW3, haveBW10, haveBWV2 bool
	phase, groupDelay           []float64
}

// Run recomputes the network's reflection at every grid frequency. Each
// electrical length scales by f/f0, and the transform chain runs in
// whole-array passes with the unguarded primitives: a sample that lands
// on a stub singularity yields NaN in its slot and the sweep carries on.
func Run(sol match.Solution, load match.Load, p match.Params, grid Grid) (*Result, error) {
	if err := load.Validate(); err != nil {
		return nil, err
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	for _, l := range []float64{sol.L1, sol.L2} {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSolution, l)
		}
	}

	freqs := grid.Frequencies()
	n := len(freqs)
	y0 := 1 / p.Z0
	y0s := 1 / p.Zs
	yl := load.Admittance()

	scale := make([]float64, n)
	for i, f := range freqs {
		scale[i] = f / grid.Center
	}

	// Load through the d1 segment.
	y := make([]complex128, n)
	for i := range y {
		y[i] = txline.TransformAtAngle(yl, y0, 2*math.Pi*p.D1*scale[i])
	}
	// First stub in shunt.
	for i := range y {
		y[i] += complex(0, txline.StubSusceptanceAtAngle(y0s, 2*math.Pi*sol.L1*scale[i], p.Stub))
	}
	// Spacing segment.
	for i := range y {
		y[i] = txline.TransformAtAngle(y[i], y0, 2*math.Pi*p.D2*scale[i])
	}
	// Second stub in shunt.
	for i := range y {
		y[i] += complex(0, txline.StubSusceptanceAtAngle(y0s, 2*math.Pi*sol.L2*scale[i], p.Stub))
	}

	res := &Result{
		F0:           grid.Center,
		Frequencies:  freqs,
		Gamma:        make([]complex128, n),
		S11Mag:       make([]float64, n),
		VSWR:         make([]float64, n),
		ReturnLossDB: make([]float64, n),
	}
	for i := range y {
		g := txline.GammaFromAdmittance(y[i], y0)
		mag := cmplx.Abs(g)
		res.Gamma[i] = g
		res.S11Mag[i] = mag
		res.VSWR[i] = txline.VSWRFromGamma(mag)
		res.ReturnLossDB[i] = txline.ReturnLossDB(mag)
	}
	return res, nil
}
