package optimize

import (
	"math"
	"sort"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

// Suggestion scores one candidate stub spacing for a load. Bandwidth is
// 0 when the candidate was not swept or no band qualified; BestGamma is
// +Inf when nothing verified.
type Suggestion struct {
	D2        float64
	Solutions int
	BestGamma float64
	Bandwidth float64
}

// SpacingSearch grid-searches stub spacings for a load, implementing the
// "adjust d2" remedy: when a geometry lands in the forbidden region or
// matches with poor bandwidth, it reports which spacings do better.
// Candidates within tolerance of a half-wave multiple are skipped
// (degenerate transform), as are candidates whose solve fails; a
// candidate is never allowed to abort the search.
type SpacingSearch struct {
	// Grid holds the candidate d2 values in wavelengths. Empty uses
	// DefaultSpacingGrid.
	Grid []float64

	// SweepGrid, when it carries 2 or more points, sweeps every solved
	// candidate and scores it by Metric; otherwise candidates rank by
	// best |Γ| alone.
	SweepGrid sweep.Grid
	Metric    sweep.Metric
}

// DefaultSpacingGrid spans (0, 0.5) at 0.025λ steps, excluding the
// degenerate endpoints.
func DefaultSpacingGrid() []float64 {
	grid := make([]float64, 0, 19)
	for k := 1; k <= 19; k++ {
		grid = append(grid, float64(k)*0.025)
	}
	return grid
}

// Search evaluates every candidate spacing and returns suggestions
// ordered best-first: descending bandwidth when sweeping, then ascending
// best |Γ|, then lower d2. Load and the fixed parameters are validated
// once up front; a load that cannot be matched at any spacing yields an
// empty result, not an error.
func (s *SpacingSearch) Search(load match.Load, p match.Params) ([]Suggestion, error) {
	if err := load.Validate(); err != nil {
		return nil, err
	}
	p = p.Normalized()

	grid := s.Grid
	if len(grid) == 0 {
		grid = DefaultSpacingGrid()
	}
	withSweep := s.SweepGrid.Points >= 2

	var out []Suggestion
	for _, d2 := range grid {
		cand := p
		cand.D2 = d2
		if cand.Validate() != nil {
			continue
		}

		sols, _, err := match.Solve(load, cand)
		if err != nil || len(sols) == 0 {
			continue
		}

		sug := Suggestion{D2: d2, Solutions: len(sols), BestGamma: math.Inf(1)}
		for _, sol := range sols {
			v, err := match.Verify(sol, load, cand)
			if err != nil || !v.Matched {
				continue
			}
			if v.GammaMag < sug.BestGamma {
				sug.BestGamma = v.GammaMag
			}
			if withSweep {
				res, err := sweep.Run(sol, load, cand, s.SweepGrid)
				if err != nil {
					continue
				}
				if bw := sweep.MetricValue(res, s.Metric); bw > sug.Bandwidth {
					sug.Bandwidth = bw
				}
			}
		}
		if math.IsInf(sug.BestGamma, 1) {
			continue
		}
		out = append(out, sug)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if withSweep && out[i].Bandwidth != out[j].Bandwidth {
			return out[i].Bandwidth > out[j].Bandwidth
		}
		if out[i].BestGamma != out[j].BestGamma {
			return out[i].BestGamma < out[j].BestGamma
		}
		return out[i].D2 < out[j].D2
	})
	return out, nil
}
