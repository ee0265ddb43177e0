package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/stubmatch/internal/match"
)

func referenceSetup(t *testing.T) (match.Load, match.Params, []match.Solution) {
	t.Helper()
	load := match.Load{Z: complex(38.9, -26.7)}
	p := match.DefaultParams()
	sols, _, err := match.Solve(load, p)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	return load, p, sols
}

func referenceGrid() Grid {
	return Grid{Center: 1e9, Start: 0.8e9, Stop: 1.2e9, Points: 201}
}

func TestGridFrequencies(t *testing.T) {
	g := referenceGrid()
	fs := g.Frequencies()

	require.Len(t, fs, g.Points)
	assert.Equal(t, g.Start, fs[0])
	assert.Equal(t, g.Stop, fs[len(fs)-1])
	for i := 1; i < len(fs); i++ {
		assert.Greater(t, fs[i], fs[i-1], "grid must increase strictly")
	}
}

func TestGridValidate(t *testing.T) {
	cases := []struct {
		name string
		grid Grid
	}{
		{"start above stop", Grid{Center: 1e9, Start: 2e9, Stop: 1e9, Points: 11}},
		{"start equals stop", Grid{Center: 1e9, Start: 1e9, Stop: 1e9, Points: 11}},
		{"zero center", Grid{Center: 0, Start: 1e9, Stop: 2e9, Points: 11}},
		{"negative start", Grid{Center: 1e9, Start: -1e9, Stop: 2e9, Points: 11}},
		{"one point", Grid{Center: 1e9, Start: 1e9, Stop: 2e9, Points: 1}},
		{"nan stop", Grid{Center: 1e9, Start: 1e9, Stop: math.NaN(), Points: 11}},
		{"inf start", Grid{Center: 1e9, Start: math.Inf(1), Stop: 2e9, Points: 11}},
	}
	for _, c := range cases {
		assert.ErrorIs(t, c.grid.Validate(), ErrInvalidGrid, c.name)
	}
}

func TestRunReferenceSolution(t *testing.T) {
	load, p, sols := referenceSetup(t)
	grid := referenceGrid()

	res, err := Run(sols[0], load, p, grid)
	require.NoError(t, err)

	n := len(res.Frequencies)
	require.Equal(t, grid.Points, n)
	require.Len(t, res.Gamma, n)
	require.Len(t, res.S11Mag, n)
	require.Len(t, res.VSWR, n)
	require.Len(t, res.ReturnLossDB, n)
	assert.Equal(t, grid.Center, res.F0)

	// The design frequency sits mid-grid; the match is essentially
	// perfect there and degrades away from it.
	mid := n / 2
	assert.Less(t, res.S11Mag[mid], 1e-5, "reflection at the design frequency")
	assert.Greater(t, res.S11Mag[0], res.S11Mag[mid])
	assert.Greater(t, res.S11Mag[n-1], res.S11Mag[mid])

	for i, v := range res.VSWR {
		if !math.IsNaN(v) {
			assert.GreaterOrEqual(t, v, 1.0, "VSWR invariant at index %d", i)
		}
	}
}

func TestRunValidation(t *testing.T) {
	load, p, sols := referenceSetup(t)

	_, err := Run(sols[0], load, p, Grid{Center: 1e9, Start: 2e9, Stop: 1e9, Points: 11})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Run(sols[0], load, p, Grid{Center: -1e9, Start: 1e9, Stop: 2e9, Points: 11})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Run(match.Solution{L1: math.NaN(), L2: 0.1}, load, p, referenceGrid())
	assert.ErrorIs(t, err, ErrInvalidSolution)

	_, err = Run(match.Solution{L1: 0.1, L2: math.Inf(1)}, load, p, referenceGrid())
	assert.ErrorIs(t, err, ErrInvalidSolution)

	_, err = Run(sols[0], match.Load{Z: complex(math.NaN(), 0)}, p, referenceGrid())
	assert.ErrorIs(t, err, match.ErrInvalidLoad)
}

func TestRunNeverAbortsOnSingularSamples(t *testing.T) {
	load, p, _ := referenceSetup(t)

	// A zero-length short stub is singular at every frequency: the whole
	// sweep degenerates to NaN slots, yet Run completes.
	res, err := Run(match.Solution{L1: 0, L2: 0.1}, load, p, referenceGrid())
	require.NoError(t, err)

	nan := 0
	for _, m := range res.S11Mag {
		if math.IsNaN(m) {
			nan++
		}
	}
	assert.Equal(t, len(res.S11Mag), nan, "every slot should carry the singularity as NaN")

	// Sentinels, not panics, on the metric side.
	assert.Equal(t, 0.0, res.Bandwidth3DB())
	assert.True(t, math.IsInf(res.LoadedQ(), 1))
}

func TestRunPhaseAndGroupDelay(t *testing.T) {
	load, p, sols := referenceSetup(t)
	res, err := Run(sols[0], load, p, referenceGrid())
	require.NoError(t, err)

	phase := res.UnwrappedPhase()
	require.Len(t, phase, len(res.Frequencies))
	for i := 1; i < len(phase); i++ {
		assert.LessOrEqual(t, math.Abs(phase[i]-phase[i-1]), math.Pi,
			"unwrapped phase jumps at index %d", i)
	}

	gd := res.GroupDelay()
	require.Len(t, gd, len(res.Frequencies))
	for i, v := range gd {
		assert.False(t, math.IsNaN(v), "unexpected NaN group delay at index %d", i)
	}
}
