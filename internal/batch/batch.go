package batch

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/san-kum/stubmatch/internal/match"
)

// Job is one load to match against the shared geometry.
type Job struct {
	Index int
	Label string
	Load  match.Load
}

// Outcome is the per-load result row. Err carries validation failures
// for that load only; an empty Solutions slice with a nil Err is the
// forbidden-region outcome. BestGammaMag is +Inf when nothing verified.
type Outcome struct {
	Job
	Solutions     []match.Solution
	Verifications []match.VerificationResult
	BestGammaMag  float64
	Err           error
}

// Runner solves many loads against one geometry on a bounded worker
// pool. The matching engine is pure over value inputs, so workers share
// nothing but the read-only parameters.
type Runner struct {
	params  match.Params
	workers int
	log     zerolog.Logger
}

// NewRunner builds a runner with the given parallelism. workers < 1
// falls back to serial processing.
func NewRunner(p match.Params, workers int, log zerolog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{params: p.Normalized(), workers: workers, log: log}
}

// Run processes every job and returns outcomes in job order. A
// cancelled context stops dispatch; jobs never started carry the
// context's error in their outcome.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	started := make([]bool, len(jobs))

	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				outcomes[i] = r.runOne(jobs[i])
			}
		}()
	}

dispatch:
	for i := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case idxCh <- i:
			started[i] = true
		}
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range outcomes {
			if !started[i] {
				outcomes[i] = Outcome{Job: jobs[i], BestGammaMag: math.Inf(1), Err: err}
			}
		}
	}
	return outcomes
}

func (r *Runner) runOne(job Job) Outcome {
	out := Outcome{Job: job, BestGammaMag: math.Inf(1)}

	sols, rep, err := match.Solve(job.Load, r.params)
	if err != nil {
		out.Err = err
		r.log.Warn().Str("load", job.Label).Err(err).Msg("skipping load")
		return out
	}
	out.Solutions = sols

	for _, sol := range sols {
		v, err := match.Verify(sol, job.Load, r.params)
		if err != nil {
			continue
		}
		out.Verifications = append(out.Verifications, v)
		if v.GammaMag < out.BestGammaMag {
			out.BestGammaMag = v.GammaMag
		}
	}

	ev := r.log.Info().Str("load", job.Label).Int("solutions", len(sols))
	if len(out.Verifications) > 0 {
		ev = ev.Float64("bestGamma", out.BestGammaMag)
	}
	if len(rep.Dropped) > 0 {
		ev = ev.Int("dropped", len(rep.Dropped))
	}
	ev.Msg("load processed")
	return out
}

// SortByBestMatch orders outcomes by ascending best |Γ|, pushing loads
// without a verified solution to the end. Ties keep input order.
func SortByBestMatch(outcomes []Outcome) []Outcome {
	out := append([]Outcome(nil), outcomes...)
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i].BestGammaMag, out[j].BestGammaMag
		if math.IsInf(bi, 1) {
			return false
		}
		if math.IsInf(bj, 1) {
			return true
		}
		return bi < bj
	})
	return out
}

// LabelFor formats the default label for an unlabeled load.
func LabelFor(z complex128) string {
	return fmt.Sprintf("%g%+gj", real(z), imag(z))
}
