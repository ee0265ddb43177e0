package sweep

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/stubmatch/internal/match"
)

// Metric selects the bandwidth criterion solutions are ranked under.
type Metric string

const (
	MetricBandwidth3DB    Metric = "bw3"
	MetricBandwidth10DBRL Metric = "bw10rl"
	MetricBandwidthVSWR2  Metric = "vswr2"
)

// ParseMetric parses a ranking metric name as spelled in scenario files
// and on the command line.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricBandwidth3DB, MetricBandwidth10DBRL, MetricBandwidthVSWR2:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Ranked pairs a solution with its frequency sweep.
type Ranked struct {
	Solution match.Solution
	Sweep    *Result
}

// Rank orders entries by descending bandwidth under the designated
// metric, breaking ties on lower loaded Q and then on lower first-stub
// length. Unknown metrics rank as 3 dB bandwidth. The input slice is
// left untouched.
func Rank(entries []Ranked, metric Metric) []Ranked {
	out := append([]Ranked(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		bi := MetricValue(out[i].Sweep, metric)
		bj := MetricValue(out[j].Sweep, metric)
		if bi != bj {
			if math.IsNaN(bi) {
				return false
			}
			if math.IsNaN(bj) {
				return true
			}
			return bi > bj
		}
		qi, qj := out[i].Sweep.LoadedQ(), out[j].Sweep.LoadedQ()
		if qi != qj {
			if math.IsNaN(qi) {
				return false
			}
			if math.IsNaN(qj) {
				return true
			}
			return qi < qj
		}
		return out[i].Solution.L1 < out[j].Solution.L1
	})
	return out
}

// MetricValue evaluates one metric on a swept result.
func MetricValue(r *Result, m Metric) float64 {
	switch m {
	case MetricBandwidth10DBRL:
		return r.Bandwidth10DBRL()
	case MetricBandwidthVSWR2:
		return r.BandwidthVSWR2()
	default:
		return r.Bandwidth3DB()
	}
}
