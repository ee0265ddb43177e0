package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stubmatch/internal/sweep"
)

// vswrPlotCap bounds the VSWR panel. Total reflection sends VSWR to
// infinity and a single off-scale sample would flatten the rest of the
// curve, so anything above the cap is drawn at the cap.
const vswrPlotCap = 10.0

// PlotOptions sets the terminal geometry of a panel. Zero values fall
// back to an 80x10 chart.
type PlotOptions struct {
	Width  int
	Height int
}

func (o PlotOptions) normalized() PlotOptions {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 10
	}
	return o
}

// S11Panel plots the reflection magnitude across the sweep window.
func S11Panel(res *sweep.Result, opt PlotOptions) string {
	return panel(res.S11Mag, res, "|S11|", opt)
}

// VSWRPanel plots the standing-wave ratio, capped at vswrPlotCap.
func VSWRPanel(res *sweep.Result, opt PlotOptions) string {
	capped := make([]float64, len(res.VSWR))
	for i, v := range res.VSWR {
		if v > vswrPlotCap {
			v = vswrPlotCap
		}
		capped[i] = v
	}
	return panel(capped, res, fmt.Sprintf("VSWR (cap %g)", vswrPlotCap), opt)
}

// ReturnLossPanel plots return loss in dB.
func ReturnLossPanel(res *sweep.Result, opt PlotOptions) string {
	return panel(res.ReturnLossDB, res, "return loss dB", opt)
}

// FrequencyPanels stacks the three sweep panels into one printable
// block.
func FrequencyPanels(res *sweep.Result, opt PlotOptions) string {
	var b strings.Builder
	b.WriteString(S11Panel(res, opt))
	b.WriteString("\n\n")
	b.WriteString(ReturnLossPanel(res, opt))
	b.WriteString("\n\n")
	b.WriteString(VSWRPanel(res, opt))
	b.WriteString("\n")
	return b.String()
}

// panel renders one asciigraph chart. Infinities become NaN so
// asciigraph draws a gap instead of rescaling the whole plot.
func panel(series []float64, res *sweep.Result, label string, opt PlotOptions) string {
	opt = opt.normalized()
	data := make([]float64, len(series))
	for i, v := range series {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		data[i] = v
	}
	caption := label
	if n := len(res.Frequencies); n > 0 {
		caption = fmt.Sprintf("%s  %s - %s", label,
			FormatFrequency(res.Frequencies[0]), FormatFrequency(res.Frequencies[n-1]))
	}
	return asciigraph.Plot(data,
		asciigraph.Height(opt.Height),
		asciigraph.Width(opt.Width),
		asciigraph.Caption(caption),
	)
}

// FormatFrequency renders a frequency in Hz with a unit chosen by
// magnitude.
func FormatFrequency(f float64) string {
	abs := math.Abs(f)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.4g GHz", f/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.4g MHz", f/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.4g kHz", f/1e3)
	default:
		return fmt.Sprintf("%.4g Hz", f)
	}
}
