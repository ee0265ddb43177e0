package match

import (
	"math/cmplx"
	"sort"
)

// Dedupe merges solutions that realize the same electrical state, which
// arises when length pairs separated by half-wave periods alias to one
// network. Two solutions are duplicates when their forward-simulated
// admittances agree within precision both after the first stub and at
// the source. The source plane alone cannot tell the two legitimate
// double-stub branches apart, because every true solution presents Y0
// there by construction; the first-stub node is what distinguishes them.
// Output is ordered by ascending first-stub length and keeps the first
// solution of each duplicate group.
func Dedupe(sols []Solution, load Load, p Params) []Solution {
	if len(sols) <= 1 {
		return sols
	}
	p = p.Normalized()

	sorted := append([]Solution(nil), sols...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].L1 < sorted[j].L1 })

	type state struct {
		node1, source complex128
		valid         bool
	}
	states := make([]state, len(sorted))
	for i, s := range sorted {
		n1, src, err := NodeAdmittances(s, load, p)
		states[i] = state{node1: n1, source: src, valid: err == nil}
	}

	tol := p.Precision
	out := make([]Solution, 0, len(sorted))
	var kept []state
	for i, s := range sorted {
		dup := false
		if states[i].valid {
			for _, k := range kept {
				if cmplx.Abs(states[i].node1-k.node1) <= tol && cmplx.Abs(states[i].source-k.source) <= tol {
					dup = true
					break
				}
			}
		}
		if dup {
			continue
		}
		out = append(out, s)
		if states[i].valid {
			kept = append(kept, states[i])
		}
	}
	return out
}
