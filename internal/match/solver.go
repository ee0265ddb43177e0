package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/stubmatch/internal/txline"
)

// Solve finds every stub-length pair that matches the load to the main
// line for the given geometry. An empty result with a nil error is the
// forbidden-region outcome, not a failure; the Report carries dropped
// candidates and length-bound rejections. Returned solutions are
// deduplicated and ordered by ascending first-stub length.
func Solve(load Load, p Params) ([]Solution, *Report, error) {
	if err := load.Validate(); err != nil {
		return nil, nil, err
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	y0 := 1 / p.Z0
	y0s := 1 / p.Zs
	y1, err := txline.TransformAdmittance(load.Admittance(), y0, p.D1)
	if err != nil {
		return nil, nil, fmt.Errorf("admittance at first stub: %w", err)
	}

	f := firstStubObjective(y1, y0, y0s, p)
	rep := &Report{}
	candidates := findRoots(f, y0, y0s, p, rep)

	sols := make([]Solution, 0, len(candidates))
	for _, cand := range candidates {
		l2, err := secondStubLength(y1, y0, y0s, cand.L1, p)
		if err != nil {
			rep.Dropped = append(rep.Dropped, DroppedCandidate{Lo: cand.Lo, Hi: cand.Hi, Err: err})
			continue
		}
		rep.Candidates = append(rep.Candidates, cand)

		sol := Solution{L1: txline.ReduceHalfWave(cand.L1), L2: l2}
		if sol.L1 >= p.MaxStubLength || sol.L2 >= p.MaxStubLength {
			sol.NonPhysical = true
			rep.NonPhysical = append(rep.NonPhysical, sol)
			continue
		}
		sols = append(sols, sol)
	}

	return Dedupe(sols, load, p), rep, nil
}

// firstStubObjective builds the one-dimensional matching objective
//
//	g(l1) = Re{transform(Y1 + Ystub(l1), Y0, d2)} - Y0
//
// whose roots are the first-stub lengths that land the conductance on
// target after the spacing transform. The objective is bounded: as the
// stub susceptance grows without bound near a singular length, the
// transformed conductance falls to zero and g tends to -Y0. It is
// periodic in l1 with period 0.5λ and has 0 or 2 roots per period.
func firstStubObjective(y1 complex128, y0, y0s float64, p Params) objectiveFunc {
	return func(l1 float64) (float64, bool) {
		b, err := txline.StubSusceptance(y0s, l1, p.Stub)
		if err != nil {
			return 0, false
		}
		y2, err := txline.TransformAdmittance(y1+complex(0, b), y0, p.D2)
		if err != nil {
			return 0, false
		}
		return real(y2) - y0, true
	}
}

// secondStubLength derives l2 in closed form. The root search already
// forced the conductance after the spacing transform to Y0, so the
// second stub only has to cancel the residual susceptance there.
func secondStubLength(y1 complex128, y0, y0s float64, l1 float64, p Params) (float64, error) {
	b1, err := txline.StubSusceptance(y0s, l1, p.Stub)
	if err != nil {
		return 0, err
	}
	y2, err := txline.TransformAdmittance(y1+complex(0, b1), y0, p.D2)
	if err != nil {
		return 0, err
	}
	return txline.StubLengthForSusceptance(y0s, -imag(y2), p.Stub)
}

// findRoots scans one half-wave period for sign-change brackets and
// refines each by bisection. Samples sit at cell midpoints so that even
// sample counts can never land on a stub singularity; singular samples
// that slip through are skipped, and a bracket is never formed across
// one. When the whole grid shows no sign change, seed guesses get a
// last look before the search concedes the forbidden region.
func findRoots(f objectiveFunc, y0, y0s float64, p Params, rep *Report) []CandidateRoot {
	n := p.GridSamples
	step := 0.5 / float64(n)

	ls := make([]float64, n)
	fs := make([]float64, n)
	ok := make([]bool, n)
	for i := 0; i < n; i++ {
		ls[i] = (float64(i) + 0.5) * step
		fs[i], ok[i] = f(ls[i])
	}

	var roots []CandidateRoot
	refine := func(lo, hi, flo float64, g objectiveFunc) {
		root, converged := bisect(g, lo, hi, flo, p.Precision)
		if !converged {
			rep.Dropped = append(rep.Dropped, DroppedCandidate{Lo: lo, Hi: hi, Err: ErrNoConvergence})
			return
		}
		roots = append(roots, CandidateRoot{
			L1:     txline.ReduceHalfWave(root),
			Origin: OriginBracket,
			Lo:     lo,
			Hi:     hi,
		})
	}

	for i := 0; i+1 < n; i++ {
		if !ok[i] {
			continue
		}
		if fs[i] == 0 {
			roots = append(roots, CandidateRoot{L1: ls[i], Origin: OriginBracket, Lo: ls[i], Hi: ls[i]})
			continue
		}
		if ok[i+1] && fs[i]*fs[i+1] < 0 {
			refine(ls[i], ls[i+1], fs[i], f)
		}
	}
	if n > 0 && ok[n-1] && fs[n-1] == 0 {
		roots = append(roots, CandidateRoot{L1: ls[n-1], Origin: OriginBracket, Lo: ls[n-1], Hi: ls[n-1]})
	}

	// The period wraps. When the stub is regular at zero length the
	// objective is continuous across 0.5λ → 0 and a root can straddle
	// the boundary; refine it in the unwrapped coordinate.
	if _, err := txline.StubSusceptance(y0s, 0, p.Stub); err == nil && n >= 2 && ok[0] && ok[n-1] && fs[n-1]*fs[0] < 0 {
		wrapped := func(l float64) (float64, bool) { return f(txline.ReduceHalfWave(l)) }
		refine(ls[n-1], ls[0]+0.5, fs[n-1], wrapped)
	}

	if len(roots) > 0 {
		sort.Slice(roots, func(i, j int) bool { return roots[i].L1 < roots[j].L1 })
		return roots
	}
	return seedRoots(f, y0, p)
}

// seedRoots probes secant iterations from guesses spread across the
// period. A root pair falling inside a single grid cell (near-tangent
// objective) shows the scan no sign change; a locally convergent method
// started nearby can still land on it. Results are gated on their
// residual because secant carries no bracket guarantee.
func seedRoots(f objectiveFunc, y0 float64, p Params) []CandidateRoot {
	const seeds = 8
	gate := y0 * 100 * p.Precision

	var roots []CandidateRoot
	for j := 0; j < seeds; j++ {
		s := (float64(j) + 0.5) * 0.5 / seeds
		root, converged := secant(f, s, s+0.5/(4*seeds), p.Precision)
		if !converged {
			continue
		}
		root = txline.ReduceHalfWave(root)
		fr, valid := f(root)
		if !valid || math.Abs(fr) > gate {
			continue
		}
		dup := false
		for _, r := range roots {
			if math.Abs(r.L1-root) <= 10*p.Precision {
				dup = true
				break
			}
		}
		if !dup {
			roots = append(roots, CandidateRoot{L1: root, Origin: OriginSeed, Lo: s, Hi: s})
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].L1 < roots[j].L1 })
	return roots
}
