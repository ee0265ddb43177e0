package viz

import "strings"

// brailleDots maps a sub-pixel position inside one terminal cell to its
// bit in the Unicode Braille block (base 0x2800). A cell packs 2x4
// sub-pixels, which come out roughly square in common terminal fonts.
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel canvas. Coordinates are in sub-pixels: a
// canvas of w by h terminal cells spans 2w by 4h sub-pixels with the
// origin at the top left. Out-of-range writes are dropped.
type Canvas struct {
	cells         []rune
	width, height int
}

// NewCanvas allocates an empty canvas of w by h terminal cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{cells: make([]rune, w*h), width: w, height: h}
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
	return c
}

// PixelWidth reports the canvas width in sub-pixels.
func (c *Canvas) PixelWidth() int { return 2 * c.width }

// PixelHeight reports the canvas height in sub-pixels.
func (c *Canvas) PixelHeight() int { return 4 * c.height }

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.width || row >= c.height {
		return
	}
	c.cells[row*c.width+col] |= brailleDots[y%4][x%2]
}

// Line draws a segment between two sub-pixel points using Bresenham's
// algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a circle of radius r around (cx, cy) using the midpoint
// algorithm. Only every step-th point is lit, so guide circles can stay
// visually lighter than data; step < 1 draws solid.
func (c *Canvas) Circle(cx, cy, r, step int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	if step < 1 {
		step = 1
	}
	x, y := r, 0
	d := 1 - r
	i := 0
	for x >= y {
		if i%step == 0 {
			c.Set(cx+x, cy+y)
			c.Set(cx-x, cy+y)
			c.Set(cx+x, cy-y)
			c.Set(cx-x, cy-y)
			c.Set(cx+y, cy+x)
			c.Set(cx-y, cy+x)
			c.Set(cx+y, cy-x)
			c.Set(cx-y, cy-x)
		}
		i++
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// Marker lights a small plus-shaped cluster so a single point stands
// out among line work.
func (c *Canvas) Marker(x, y int) {
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x-1, y)
	c.Set(x, y+1)
	c.Set(x, y-1)
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	for row := 0; row < c.height; row++ {
		b.WriteString(string(c.cells[row*c.width : (row+1)*c.width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
