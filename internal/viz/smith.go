package viz

import "math"

// smithGuides are the normalized resistances whose constant-resistance
// circles are drawn as chart guides. A circle for resistance r is
// centered at r/(1+r) on the real axis with radius 1/(1+r).
var smithGuides = []float64{0.2, 0.5, 1, 2, 5}

// smithMargin leaves a little room between the unit circle and the
// canvas edge so markers near |gamma| = 1 stay visible.
const smithMargin = 1.08

// SmithChart renders one or more reflection-coefficient loci on a
// Braille Smith chart of the given terminal-cell size. The unit circle,
// real axis and constant-resistance guides are always drawn; each locus
// is a polyline in the gamma plane with non-finite points skipped. The
// first point of the first locus (the load) and the chart center (the
// match) are marked.
func SmithChart(loci [][]complex128, width, height int) string {
	if width < 16 {
		width = 16
	}
	if height < 8 {
		height = 8
	}
	c := NewCanvas(width, height)

	px, py := c.PixelWidth(), c.PixelHeight()
	cx, cy := px/2, py/2
	scale := float64(minInt(px, py)) / 2 / smithMargin

	toX := func(g complex128) int { return cx + int(math.Round(real(g)*scale)) }
	toY := func(g complex128) int { return cy - int(math.Round(imag(g)*scale)) }

	// Chart frame: unit circle, real axis, resistance guides.
	c.Circle(cx, cy, int(math.Round(scale)), 1)
	c.Line(cx-int(math.Round(scale)), cy, cx+int(math.Round(scale)), cy)
	for _, r := range smithGuides {
		gc := r / (1 + r)
		gr := 1 / (1 + r)
		c.Circle(cx+int(math.Round(gc*scale)), cy, int(math.Round(gr*scale)), 3)
	}

	for _, locus := range loci {
		drawLocus(c, locus, toX, toY)
	}
	if len(loci) > 0 && len(loci[0]) > 0 && isFinitePoint(loci[0][0]) {
		c.Marker(toX(loci[0][0]), toY(loci[0][0]))
	}
	c.Marker(cx, cy)
	return c.String()
}

func drawLocus(c *Canvas, locus []complex128, toX, toY func(complex128) int) {
	havePrev := false
	var px, py int
	for _, g := range locus {
		if !isFinitePoint(g) {
			havePrev = false
			continue
		}
		x, y := toX(g), toY(g)
		if havePrev {
			c.Line(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
		havePrev = true
	}
}

func isFinitePoint(g complex128) bool {
	return !math.IsNaN(real(g)) && !math.IsInf(real(g), 0) &&
		!math.IsNaN(imag(g)) && !math.IsInf(imag(g), 0)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
