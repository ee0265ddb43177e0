package export

import (
	"fmt"
	"math"
	"strings"
)

// SweepSVG renders one sweep curve as an SVG polyline. Non-finite
// samples break the path and resume at the next finite point.
func SweepSVG(freqs, values []float64, width, height int, strokeColor string) string {
	if len(freqs) < 2 || len(freqs) != len(values) {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	finite := 0
	for i, f := range freqs {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite++
		if f < minX {
			minX = f
		}
		if f > maxX {
			maxX = f
		}
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	if finite < 2 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	pen := false
	for i, f := range freqs {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			pen = false
			continue
		}
		x := (f - minX) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if !pen {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			pen = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SmithSVG renders a reflection-plane locus inside the unit circle.
// The first point is marked as the load, the last as the source.
func SmithSVG(locus []complex128, size int, strokeColor string) string {
	if len(locus) < 2 {
		return ""
	}

	// Fixed bounds a little beyond the unit circle.
	const bound = 1.15
	px := func(g complex128) (float64, float64) {
		x := (real(g) + bound) / (2 * bound) * float64(size)
		y := float64(size) - (imag(g)+bound)/(2*bound)*float64(size)
		return x, y
	}

	cx := float64(size) / 2
	cy := float64(size) / 2
	unitR := float64(size) / (2 * bound)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	// Chart guides: unit circle, axes, matched point.
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333333" stroke-width="1"/>
`, cx, cy, unitR))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333" stroke-width="0.5"/>
`, cx-unitR, cy, cx+unitR, cy))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333" stroke-width="0.5"/>
`, cx, cy-unitR, cx, cy+unitR))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="#333333"/>
`, cx, cy))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))

	pen := false
	for _, g := range locus {
		if isBadPoint(g) {
			pen = false
			continue
		}
		x, y := px(g)
		if !pen {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			pen = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	if !isBadPoint(locus[0]) {
		x, y := px(locus[0])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3.5" fill="%s"/>
`, x, y, strokeColor))
	}
	if last := locus[len(locus)-1]; !isBadPoint(last) {
		x, y := px(last)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3.5" fill="none" stroke="#ffffff" stroke-width="1.5"/>
`, x, y))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func isBadPoint(g complex128) bool {
	re, im := real(g), imag(g)
	return math.IsNaN(re) || math.IsNaN(im) || math.IsInf(re, 0) || math.IsInf(im, 0)
}
