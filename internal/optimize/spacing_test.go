package optimize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

func TestSearchFindsSpacingsForForbiddenGeometry(t *testing.T) {
	// 10 Ω at the first-stub plane with d2 = 0.25λ is unmatchable; the
	// search must surface spacings that are.
	p := match.DefaultParams()
	p.D1 = 0
	p.D2 = 0.25
	load := match.Load{Z: complex(10, 0)}

	sols, _, err := match.Solve(load, p)
	require.NoError(t, err)
	require.Empty(t, sols, "precondition: the geometry itself is forbidden")

	s := &SpacingSearch{}
	sugs, err := s.Search(load, p)
	require.NoError(t, err)
	require.NotEmpty(t, sugs, "some spacing must match a 10 Ω load")

	for _, sug := range sugs {
		assert.Greater(t, sug.Solutions, 0)
		assert.Less(t, sug.BestGamma, 1e-6, "d2 = %v", sug.D2)
		assert.NotEqual(t, 0.25, sug.D2, "the forbidden spacing cannot be suggested")
	}
}

func TestSearchSkipsDegenerateSpacings(t *testing.T) {
	s := &SpacingSearch{Grid: []float64{0.5, 1.0}}
	sugs, err := s.Search(match.Load{Z: complex(38.9, -26.7)}, match.DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, sugs, "half-wave multiples are degenerate, not candidates")
}

func TestSearchRanksByBandwidth(t *testing.T) {
	s := &SpacingSearch{
		Grid:      []float64{0.125, 0.25, 0.375},
		SweepGrid: sweep.Grid{Center: 1e9, Start: 0.5e9, Stop: 1.5e9, Points: 101},
		Metric:    sweep.MetricBandwidth3DB,
	}
	sugs, err := s.Search(match.Load{Z: complex(38.9, -26.7)}, match.DefaultParams())
	require.NoError(t, err)
	require.NotEmpty(t, sugs)

	for i := 1; i < len(sugs); i++ {
		assert.GreaterOrEqual(t, sugs[i-1].Bandwidth, sugs[i].Bandwidth,
			"suggestions must come widest band first")
	}
	for _, sug := range sugs {
		assert.Greater(t, sug.Bandwidth, 0.0, "swept candidates should have a band at d2 = %v", sug.D2)
	}
}

func TestSearchValidatesLoad(t *testing.T) {
	s := &SpacingSearch{}
	_, err := s.Search(match.Load{Z: complex(math.NaN(), 0)}, match.DefaultParams())
	assert.ErrorIs(t, err, match.ErrInvalidLoad)
}

func TestDefaultSpacingGridAvoidsDegeneracy(t *testing.T) {
	for _, d2 := range DefaultSpacingGrid() {
		assert.Greater(t, d2, 0.0)
		assert.Less(t, d2, 0.5)
	}
}
