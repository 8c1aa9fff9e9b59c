package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Block characters for 2x vertical resolution.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// cell is one terminal cell as it will be shown.
type cell struct {
	ch     rune
	fg, bg Color
}

var blankCell = cell{ch: ' ', fg: NoColor, bg: NoColor}

// textCell is a glyph placed on top of the pixel layer.
type textCell struct {
	ch rune
	fg Color
}

// viewport is the block of cells that logical coordinates map into.
type viewport struct {
	col, row   int
	cols, rows int
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters, plus a text layer on top of it.
//
// The canvas covers termWidth x termHeight cells. Logical drawing (the
// Surface methods) is scaled into the viewport; HUD text can be placed
// anywhere with Text. Render only emits cells that changed since the
// previous frame.
type Canvas struct {
	termWidth  int // Render area columns
	termHeight int // Render area rows

	view           viewport
	subPixelHeight int     // view.rows * 2
	pixels         []Color // Flat slice: [y * view.cols + x], NoColor if unset
	text           []textCell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // view.cols / logicalWidth
	scaleY        float64 // (view.rows*2) / logicalHeight

	// Offset for centering the render area inside the terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Drawing state, in the manner of a 2D canvas context
	fill      Color
	stroke    Color
	lineWidth float64
	dash      []float64
	font      Font
	align     TextAlign

	prev      []cell // What the terminal currently shows
	redraw    bool   // Next Render repaints every cell
	renderBuf []byte
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells whose
// viewport initially covers the whole area and maps a logicalWidth x
// logicalHeight coordinate space.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		fill:          White,
		stroke:        White,
		lineWidth:     1,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the render area. The viewport is reset to the full area
// and the next Render repaints everything.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.text == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.text = make([]textCell, termWidth*termHeight)
		c.prev = make([]cell, termWidth*termHeight)
	}
	c.SetViewport(0, 0, termWidth, termHeight)
	c.redraw = true
}

// SetViewport places the logical drawing area at (col, row) with the given
// size in cells, relative to the render area. It is clipped to the area.
func (c *Canvas) SetViewport(col, row, cols, rows int) {
	col = max(0, min(col, c.termWidth))
	row = max(0, min(row, c.termHeight))
	cols = max(0, min(cols, c.termWidth-col))
	rows = max(0, min(rows, c.termHeight-row))

	if cols != c.view.cols || rows != c.view.rows || c.pixels == nil {
		c.pixels = make([]Color, cols*rows*2)
		c.clearPixels()
	}
	c.view = viewport{col: col, row: row, cols: cols, rows: rows}
	c.subPixelHeight = rows * 2
	if c.logicalWidth > 0 && c.logicalHeight > 0 {
		c.scaleX = float64(cols) / c.logicalWidth
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// Viewport returns the current viewport (col, row, cols, rows) in render area cells.
func (c *Canvas) Viewport() (col, row, cols, rows int) {
	return c.view.col, c.view.row, c.view.cols, c.view.rows
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared by someone else.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Clear resets all pixels and text.
func (c *Canvas) Clear() {
	c.clearPixels()
	clear(c.text)
}

func (c *Canvas) clearPixels() {
	for i := range c.pixels {
		c.pixels[i] = NoColor
	}
}

// setPixel sets a pixel at viewport pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.view.cols && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.view.cols+x] = col
	}
}

// Pixel returns the pixel at viewport pixel coordinates, NoColor when out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x >= 0 && x < c.view.cols && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.view.cols+x]
	}
	return NoColor
}

// Text writes s starting at the 0-based render area cell (col, row).
// Characters falling outside the area are dropped.
func (c *Canvas) Text(col, row int, s string, fg Color) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for _, r := range s {
		if col >= c.termWidth {
			return
		}
		if col >= 0 {
			c.text[row*c.termWidth+col] = textCell{ch: r, fg: fg}
		}
		col++
	}
}

// TextCentered writes s centered on row across the whole render area.
func (c *Canvas) TextCentered(row int, s string, fg Color) {
	c.Text((c.termWidth-utf8.RuneCountInString(s))/2, row, s, fg)
}

// cellAt resolves what the cell at (col, row) shows.
func (c *Canvas) cellAt(col, row int) cell {
	var top, bottom Color = NoColor, NoColor
	vc, vr := col-c.view.col, row-c.view.row
	if vc >= 0 && vc < c.view.cols && vr >= 0 && vr < c.view.rows {
		top = c.pixels[(vr*2)*c.view.cols+vc]
		bottom = c.pixels[(vr*2+1)*c.view.cols+vc]
	}

	if t := c.text[row*c.termWidth+col]; t.ch != 0 {
		bg := top
		if bg == NoColor {
			bg = bottom
		}
		return cell{ch: t.ch, fg: t.fg, bg: bg}
	}

	switch {
	case top == NoColor && bottom == NoColor:
		return blankCell
	case top == bottom:
		return cell{ch: ' ', fg: NoColor, bg: top}
	case top == NoColor:
		return cell{ch: BlockLowerHalf, fg: bottom, bg: NoColor}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// Cells calls fn for every cell of the render area with what it shows.
// Backends that manage their own screen buffer (tcell) use this instead of Render.
func (c *Canvas) Cells(fn func(col, row int, ch rune, fg, bg Color)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cl := c.cellAt(col, row)
			fn(col, row, cl.ch, cl.fg, cl.bg)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the last Render as ANSI
// truecolor sequences.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	curFG, curBG := Color(0xFFFFFFFF), Color(0xFFFFFFFF) // Force the first SGR
	lastCol, lastRow := -2, -2

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cl := c.cellAt(col, row)
			if !c.redraw && c.prev[i] == cl {
				continue
			}
			c.prev[i] = cl

			if row != lastRow || col != lastCol+1 {
				buf = append(buf, "\033["...)
				buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
				buf = append(buf, 'H')
			}
			if cl.fg != curFG {
				buf = appendSGR(buf, cl.fg, false)
				curFG = cl.fg
			}
			if cl.bg != curBG {
				buf = appendSGR(buf, cl.bg, true)
				curBG = cl.bg
			}
			buf = utf8.AppendRune(buf, cl.ch)
			lastCol, lastRow = col, row
		}
	}
	c.redraw = false
	if len(buf) > 0 {
		buf = append(buf, "\033[0m"...)
	}
	c.renderBuf = buf

	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

// RenderBorder draws a box border around the render area when it is
// centered inside a larger terminal.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	cw.WriteString("\033[0m")
	if hasV {
		if hasH {
			cw.MoveCursor(left, top)
			cw.WriteString("┌" + bar + "┐")
			cw.MoveCursor(left, bottom)
			cw.WriteString("└" + bar + "┘")
		} else {
			cw.MoveCursor(c.offsetCol+1, top)
			cw.WriteString(bar)
			cw.MoveCursor(c.offsetCol+1, bottom)
			cw.WriteString(bar)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row < bottom; row++ {
			cw.MoveCursor(left, row)
			cw.WriteString("│")
			cw.MoveCursor(right, row)
			cw.WriteString("│")
		}
	}
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToCell converts logical coordinates to the 0-based render area cell.
func (c *Canvas) LogicalToCell(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return c.view.col + px, c.view.row + py/2
}
