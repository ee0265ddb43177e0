package match

import (
	"math"

	"github.com/san-kum/stubmatch/internal/txline"
)

// objectiveFunc evaluates the matching objective at a first-stub length.
// The boolean is false at singular lengths, which are not brackets and
// must never be stepped across.
type objectiveFunc func(l1 float64) (float64, bool)

// iterationCap bounds a refinement loop in terms of the work bisection
// actually needs: halving an interval of the given width down to tol
// takes log2(width/tol) steps, plus slack. Hard ceiling of 200 so a
// mis-scaled tolerance can never spin.
func iterationCap(width, tol float64) int {
	if width <= tol {
		return 1
	}
	n := int(math.Ceil(math.Log2(width/tol))) + 8
	if n > 200 {
		n = 200
	}
	return n
}

// bisect narrows a sign-change bracket [lo, hi] until its width reaches
// tol and returns the midpoint. flo is the objective at lo. Reports
// failure when the cap is hit or a midpoint lands on a singular length.
func bisect(f objectiveFunc, lo, hi, flo, tol float64) (float64, bool) {
	limit := iterationCap(hi-lo, tol)
	neg := flo < 0
	for i := 0; hi-lo > tol; i++ {
		if i >= limit {
			return 0, false
		}
		mid := 0.5 * (lo + hi)
		fm, ok := f(mid)
		if !ok {
			return 0, false
		}
		if fm == 0 {
			return mid, true
		}
		if (fm < 0) == neg {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), true
}

// secant runs an unbracketed secant iteration from two nearby starting
// lengths. Unlike bisect it carries no convergence guarantee, so callers
// must gate the result on its residual. Iterates are evaluated modulo
// the half-wave period; ones that wander far outside it are abandoned.
func secant(f objectiveFunc, x0, x1, tol float64) (float64, bool) {
	f0, ok := f(txline.ReduceHalfWave(x0))
	if !ok {
		return 0, false
	}
	f1, ok := f(txline.ReduceHalfWave(x1))
	if !ok {
		return 0, false
	}
	limit := iterationCap(0.5, tol)
	for i := 0; i < limit; i++ {
		if f1 == f0 {
			return 0, false
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.IsNaN(x2) || x2 < -0.25 || x2 > 0.75 {
			return 0, false
		}
		if math.Abs(x2-x1) <= tol {
			return x2, true
		}
		f2, ok := f(txline.ReduceHalfWave(x2))
		if !ok {
			return 0, false
		}
		x0, f0 = x1, f1
		x1, f1 = x2, f2
	}
	return 0, false
}
