package batch

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/stubmatch/internal/match"
)

// referenceJobs mirrors the stock batch example: a mix of matchable
// loads around a 50 Ω system.
func referenceJobs() []Job {
	zs := []complex128{
		complex(38.9, -26.7),
		complex(60, 40),
		complex(100, 50),
		complex(25, -10),
		complex(75, 0),
	}
	jobs := make([]Job, len(zs))
	for i, z := range zs {
		jobs[i] = Job{Index: i, Label: LabelFor(z), Load: match.Load{Z: z}}
	}
	return jobs
}

func TestRunnerProcessesAllLoads(t *testing.T) {
	r := NewRunner(match.DefaultParams(), 4, zerolog.Nop())
	outcomes := r.Run(context.Background(), referenceJobs())

	require.Len(t, outcomes, 5)
	for i, o := range outcomes {
		assert.Equal(t, i, o.Index, "outcomes must stay in job order")
		assert.NoError(t, o.Err)
		assert.NotEmpty(t, o.Solutions, "load %s should be matchable", o.Label)
		assert.Less(t, o.BestGammaMag, 1e-6, "load %s best match", o.Label)
		assert.Len(t, o.Verifications, len(o.Solutions))
	}
}

func TestRunnerSerialMatchesParallel(t *testing.T) {
	jobs := referenceJobs()
	serial := NewRunner(match.DefaultParams(), 1, zerolog.Nop()).Run(context.Background(), jobs)
	parallel := NewRunner(match.DefaultParams(), 8, zerolog.Nop()).Run(context.Background(), jobs)

	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, serial[i].Solutions, parallel[i].Solutions, "load %s", serial[i].Label)
		assert.Equal(t, serial[i].BestGammaMag, parallel[i].BestGammaMag)
	}
}

func TestRunnerReportsPerLoadFailures(t *testing.T) {
	jobs := []Job{
		{Index: 0, Label: "good", Load: match.Load{Z: complex(38.9, -26.7)}},
		{Index: 1, Label: "bad", Load: match.Load{Z: complex(-5, 0)}},
		{Index: 2, Label: "reactive", Load: match.Load{Z: complex(0, 40)}},
	}
	outcomes := NewRunner(match.DefaultParams(), 2, zerolog.Nop()).Run(context.Background(), jobs)

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.NotEmpty(t, outcomes[0].Solutions)

	assert.ErrorIs(t, outcomes[1].Err, match.ErrInvalidLoad, "negative resistance must fail its own row only")

	assert.NoError(t, outcomes[2].Err, "forbidden region is an outcome, not an error")
	assert.Empty(t, outcomes[2].Solutions)
	assert.True(t, math.IsInf(outcomes[2].BestGammaMag, 1))
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := NewRunner(match.DefaultParams(), 2, zerolog.Nop()).Run(ctx, referenceJobs())
	require.Len(t, outcomes, 5)
	for _, o := range outcomes {
		if o.Err != nil {
			assert.ErrorIs(t, o.Err, context.Canceled)
		}
	}
}

func TestSortByBestMatch(t *testing.T) {
	outcomes := []Outcome{
		{Job: Job{Label: "none"}, BestGammaMag: math.Inf(1)},
		{Job: Job{Label: "ok"}, BestGammaMag: 1e-3},
		{Job: Job{Label: "best"}, BestGammaMag: 1e-9},
	}
	sorted := SortByBestMatch(outcomes)

	require.Len(t, sorted, 3)
	assert.Equal(t, "best", sorted[0].Label)
	assert.Equal(t, "ok", sorted[1].Label)
	assert.Equal(t, "none", sorted[2].Label)
	assert.Equal(t, "none", outcomes[0].Label, "input must stay untouched")
}

func TestReadJobsCSV(t *testing.T) {
	in := strings.NewReader("label,load_r,load_x\nantenna,73,42.5\n,38.9,-26.7\n")
	jobs, err := ReadJobsCSV(in)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "antenna", jobs[0].Label)
	assert.Equal(t, complex(73, 42.5), jobs[0].Load.Z)
	assert.Equal(t, "38.9-26.7j", jobs[1].Label, "unlabeled rows get a default label")
	assert.Equal(t, complex(38.9, -26.7), jobs[1].Load.Z)
}

func TestReadJobsCSVColumnOrder(t *testing.T) {
	in := strings.NewReader("load_x,extra,load_r\n-26.7,ignored,38.9\n")
	jobs, err := ReadJobsCSV(in)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, complex(38.9, -26.7), jobs[0].Load.Z)
}

func TestReadJobsCSVErrors(t *testing.T) {
	_, err := ReadJobsCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err, "missing load columns")

	_, err = ReadJobsCSV(strings.NewReader("load_r,load_x\nnot-a-number,2\n"))
	assert.Error(t, err, "unparseable resistance")
}

func TestWriteSummaryCSV(t *testing.T) {
	r := NewRunner(match.DefaultParams(), 2, zerolog.Nop())
	outcomes := r.Run(context.Background(), []Job{
		{Index: 0, Label: "textbook", Load: match.Load{Z: complex(38.9, -26.7)}},
		{Index: 1, Label: "reactive", Load: match.Load{Z: complex(0, 40)}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, outcomes))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "label,load_r,load_x,solutions,best_gamma_mag,status", lines[0])
	assert.Contains(t, lines[1], "textbook")
	assert.Contains(t, lines[1], ",ok")
	assert.Contains(t, lines[2], "no solution")
}
