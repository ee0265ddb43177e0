package match

import (
	"fmt"
	"math"

	"github.com/san-kum/stubmatch/internal/txline"
)

// Diagnostic characterizes why a geometry admits no solution for a load.
// All conductances are in siemens.
type Diagnostic struct {
	Target       float64 // conductance the network must reach (Y0)
	G1           float64 // load conductance seen at the first-stub node
	GMin, GMax   float64 // conductance range reached by the susceptance sweep
	AnalyticGMax float64 // closed-form ceiling Y0²/(g1·sin²(2π·d2))
	Matchable    bool
	Remedies     []string
}

// diagSweepPoints samples the first stub's susceptance over its full
// domain. Tan spacing reaches toward both asymptotes, which a uniform
// grid cannot.
const diagSweepPoints = 1024

// Diagnose reports the conductance range reachable after the spacing
// transform as the first stub's susceptance sweeps its whole domain, and
// compares it to the Y0 target. Diagnostic only: it never changes what
// Solve returns. Intended for solves that came back empty, but valid on
// any input.
func Diagnose(load Load, p Params) (Diagnostic, error) {
	if err := load.Validate(); err != nil {
		return Diagnostic{}, err
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return Diagnostic{}, err
	}

	y0 := 1 / p.Z0
	y0s := 1 / p.Zs
	y1, err := txline.TransformAdmittance(load.Admittance(), y0, p.D1)
	if err != nil {
		return Diagnostic{}, fmt.Errorf("admittance at first stub: %w", err)
	}
	g1 := real(y1)

	theta2 := 2 * math.Pi * p.D2
	sin2 := math.Sin(theta2) * math.Sin(theta2)

	d := Diagnostic{Target: y0, G1: g1}
	if g1 > 0 {
		d.AnalyticGMax = y0 * y0 / (g1 * sin2)
	}

	gmin, gmax := math.Inf(1), math.Inf(-1)
	for k := 0; k < diagSweepPoints; k++ {
		phi := -math.Pi/2 + math.Pi*(float64(k)+0.5)/diagSweepPoints
		b := y0s * math.Tan(phi)
		g := real(txline.TransformAtAngle(y1+complex(0, b), y0, theta2))
		if math.IsNaN(g) {
			continue
		}
		if g < gmin {
			gmin = g
		}
		if g > gmax {
			gmax = g
		}
	}
	d.GMin, d.GMax = gmin, gmax
	d.Matchable = d.AnalyticGMax >= y0*(1-1e-9)

	switch {
	case g1 <= 0 || d.AnalyticGMax == 0:
		d.Remedies = append(d.Remedies,
			"the load presents no conductance at the first-stub node; a lossless stub network cannot supply the real part a match needs")
	case !d.Matchable:
		d.Remedies = append(d.Remedies,
			fmt.Sprintf("adjust d2: matching needs sin²(2π·d2) ≤ Y0/g1 = %.4g, but sin²(2π·%g) = %.4g", y0/g1, p.D2, sin2),
			fmt.Sprintf("adjust d1 so the first-stub node sees at most %.6g S of conductance (currently %.6g S); the load lies outside the matchable region for this spacing", y0/sin2, g1))
	default:
		d.Remedies = append(d.Remedies,
			"the reachable conductance range spans the target; if a solve still came back empty the roots likely fall inside a single grid cell, so raise GridSamples")
	}
	return d, nil
}
