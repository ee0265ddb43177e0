package sweep

import (
	"math"
	"math/cmplx"
)

// Bandwidth3DB is the contiguous span around the deepest |S11| sample
// where |S11| stays at or below the absolute −3 dB line (more than half
// the power keeps flowing forward). The absolute threshold is used, not
// one relative to the band minimum: a verified match bottoms out at the
// numeric noise floor, which would shrink a relative band to the grid
// spacing. Edge crossings are linearly interpolated and the grid edges
// clip the band. 0 Hz when no sample gets under the line.
func (r *Result) Bandwidth3DB() float64 {
	if !r.memo.haveBW3 {
		r.memo.bw3 = contiguousBand(r.Frequencies, r.ReturnLossDB, 3, false)
		r.memo.haveBW3 = true
	}
	return r.memo.bw3
}

// Bandwidth10DBRL is the contiguous span where return loss stays at or
// above 10 dB. 0 Hz when no sample reaches 10 dB.
func (r *Result) Bandwidth10DBRL() float64 {
	if !r.memo.haveBW10 {
		r.memo.bw10 = contiguousBand(r.Frequencies, r.ReturnLossDB, 10, false)
		r.memo.haveBW10 = true
	}
	return r.memo.bw10
}

// BandwidthVSWR2 is the contiguous span where VSWR stays below 2. 0 Hz
// when no sample gets there.
func (r *Result) BandwidthVSWR2() float64 {
	if !r.memo.haveBWV2 {
		r.memo.bwV2 = contiguousBand(r.Frequencies, r.VSWR, 2, true)
		r.memo.haveBWV2 = true
	}
	return r.memo.bwV2
}

// FractionalBandwidth is Bandwidth3DB over the design frequency.
func (r *Result) FractionalBandwidth() float64 {
	return r.Bandwidth3DB() / r.F0
}

// LoadedQ is the design frequency over the 3 dB bandwidth, +Inf when no
// 3 dB band exists in the swept range.
func (r *Result) LoadedQ() float64 {
	bw := r.Bandwidth3DB()
	if bw == 0 {
		return math.Inf(1)
	}
	return r.F0 / bw
}

// UnwrappedPhase is the phase of Γ(f) with 2π discontinuities removed.
// NaN slots stay NaN; unwrapping resumes from the last finite sample.
// The returned slice is the cached one: treat it as read-only.
func (r *Result) UnwrappedPhase() []float64 {
	if r.memo.phase == nil {
		r.memo.phase = unwrapGamma(r.Gamma)
	}
	return r.memo.phase
}

// GroupDelay is −(1/2π)·dφ/df over the grid: central differences inside,
// one-sided at the edges. The returned slice is the cached one: treat it
// as read-only.
func (r *Result) GroupDelay() []float64 {
	if r.memo.groupDelay == nil {
		r.memo.groupDelay = groupDelay(r.Frequencies, r.UnwrappedPhase())
	}
	return r.memo.groupDelay
}

func unwrapGamma(gamma []complex128) []float64 {
	out := make([]float64, len(gamma))
	offset := 0.0
	prev := math.NaN()
	for i, g := range gamma {
		ph := cmplx.Phase(g)
		if math.IsNaN(ph) {
			out[i] = math.NaN()
			continue
		}
		if !math.IsNaN(prev) {
			d := ph + offset - prev
			for d > math.Pi {
				offset -= 2 * math.Pi
				d -= 2 * math.Pi
			}
			for d < -math.Pi {
				offset += 2 * math.Pi
				d += 2 * math.Pi
			}
		}
		out[i] = ph + offset
		prev = out[i]
	}
	return out
}

func groupDelay(f, phase []float64) []float64 {
	n := len(f)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var dphi, df float64
		switch {
		case i == 0:
			dphi, df = phase[1]-phase[0], f[1]-f[0]
		case i == n-1:
			dphi, df = phase[n-1]-phase[n-2], f[n-1]-f[n-2]
		default:
			dphi, df = phase[i+1]-phase[i-1], f[i+1]-f[i-1]
		}
		out[i] = -dphi / (2 * math.Pi * df)
	}
	return out
}

// contiguousBand measures the widest contiguous frequency span around
// the most favorable sample where v satisfies the threshold: v ≤ thr
// when lessIsBetter, v ≥ thr otherwise. NaN samples break the band and
// the grid edges clip it. 0 when no sample qualifies.
func contiguousBand(f, v []float64, thr float64, lessIsBetter bool) float64 {
	qualify := func(x float64) bool {
		if math.IsNaN(x) {
			return false
		}
		if lessIsBetter {
			return x <= thr
		}
		return x >= thr
	}

	best := -1
	for i, x := range v {
		if math.IsNaN(x) {
			continue
		}
		if best < 0 || (lessIsBetter && x < v[best]) || (!lessIsBetter && x > v[best]) {
			best = i
		}
	}
	if best < 0 || !qualify(v[best]) {
		return 0
	}

	lo := best
	for lo > 0 && qualify(v[lo-1]) {
		lo--
	}
	hi := best
	for hi < len(v)-1 && qualify(v[hi+1]) {
		hi++
	}

	left := f[lo]
	if lo > 0 {
		left = crossing(f[lo-1], f[lo], v[lo-1], v[lo], thr)
	}
	right := f[hi]
	if hi < len(f)-1 {
		right = crossing(f[hi+1], f[hi], v[hi+1], v[hi], thr)
	}
	return right - left
}

// crossing interpolates the frequency where v meets thr between an
// outside sample (fo, vo) and an inside sample (fi, vi), clipping to the
// inside sample when interpolation is meaningless.
func crossing(fo, fi, vo, vi, thr float64) float64 {
	if math.IsNaN(vo) || math.IsInf(vo, 0) || math.IsInf(vi, 0) || vo == vi {
		return fi
	}
	t := (thr - vo) / (vi - vo)
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fi
	}
	return fo + t*(fi-fo)
}
