package draw

import (
	"math"
	"unicode/utf8"
)

// TextAlign positions FillText relative to its x coordinate.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Font describes text drawn with FillText. Terminals have one glyph size,
// so Size only matters to surfaces that can scale text.
type Font struct {
	Size float64
	Bold bool
}

// Surface is an immediate-mode 2D drawing target in logical coordinates.
// Colors and line settings are state, applied by the following calls.
type Surface interface {
	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	// SetLineDash sets an on/off dash pattern for Line and Arc. No arguments means solid.
	SetLineDash(pattern ...float64)
	SetFont(f Font)
	SetTextAlign(a TextAlign)

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	// Arc strokes a circular arc centered at (cx, cy); angles are radians.
	Arc(cx, cy, r, start, end float64)
	FillText(text string, x, y float64)
}

var _ Surface = (*Canvas)(nil)

func (c *Canvas) SetFillColor(col Color) { c.fill = col }
func (c *Canvas) SetStrokeColor(col Color) { c.stroke = col }
func (c *Canvas) SetLineWidth(w float64) { c.lineWidth = w }
func (c *Canvas) SetFont(f Font) { c.font = f }
func (c *Canvas) SetTextAlign(a TextAlign) { c.align = a }

func (c *Canvas) SetLineDash(pattern ...float64) {
	c.dash = append(c.dash[:0], pattern...)
}

// pixelSpan maps a logical interval to a half-open pixel range.
// Anything with positive extent covers at least one pixel.
func pixelSpan(start, length, scale float64) (int, int) {
	p0 := int(math.Floor(start * scale))
	p1 := int(math.Ceil((start + length) * scale))
	if length > 0 && p1 <= p0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// FillRect fills a rectangle with the fill color.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, c.fill)
		}
	}
}

// StrokeRect outlines a rectangle with the stroke color. Line width is
// ignored: terminal pixels are already wider than any stroke.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for px := x0; px < x1; px++ {
		c.setPixel(px, y0, c.stroke)
		c.setPixel(px, y1-1, c.stroke)
	}
	for py := y0; py < y1; py++ {
		c.setPixel(x0, py, c.stroke)
		c.setPixel(x1-1, py, c.stroke)
	}
}

// dashOn reports whether the pattern is "on" at distance d along a stroke.
func (c *Canvas) dashOn(d float64) bool {
	if len(c.dash) == 0 {
		return true
	}
	var period float64
	for _, v := range c.dash {
		period += v
	}
	if period <= 0 {
		return true
	}
	d = math.Mod(d, period)
	for i, v := range c.dash {
		if d < v {
			return i%2 == 0
		}
		d -= v
	}
	return true
}

// Line strokes a line using Bresenham's algorithm in pixel space.
// The dash pattern is measured in logical units.
func (c *Canvas) Line(lx1, ly1, lx2, ly2 float64) {
	x1 := int(math.Floor(lx1 * c.scaleX))
	y1 := int(math.Floor(ly1 * c.scaleY))
	x2 := int(math.Floor(lx2 * c.scaleX))
	y2 := int(math.Floor(ly2 * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	steps := max(dx, dy)
	length := math.Hypot(lx2-lx1, ly2-ly1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for i := 0; ; i++ {
		along := 0.0
		if steps > 0 {
			along = length * float64(i) / float64(steps)
		}
		if c.dashOn(along) {
			c.setPixel(x1, y1, c.stroke)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Arc strokes a circular arc by sampling points densely enough that
// neighbouring samples land on adjacent pixels.
func (c *Canvas) Arc(cx, cy, r, start, end float64) {
	if r <= 0 {
		return
	}
	sweep := end - start
	pixelRadius := r * math.Max(c.scaleX, c.scaleY)
	steps := max(16, int(math.Ceil(2*pixelRadius*math.Abs(sweep))))
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		if !c.dashOn(r * math.Abs(a-start)) {
			continue
		}
		px := int(math.Floor((cx + r*math.Cos(a)) * c.scaleX))
		py := int(math.Floor((cy + r*math.Sin(a)) * c.scaleY))
		c.setPixel(px, py, c.stroke)
	}
}

// FillText places text in the text layer at the cell containing (x, y),
// aligned by the current text alignment and colored with the fill color.
func (c *Canvas) FillText(text string, x, y float64) {
	col, row := c.LogicalToCell(x, y)
	n := utf8.RuneCountInString(text)
	switch c.align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	c.Text(col, row, text, c.fill)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
