package client

import (
	"math"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
)

// courtCellRatio is columns per row for an undistorted court: half-block
// pixels are square, so a row holds two pixel lines.
const courtCellRatio = float64(config.CourtWidth) / float64(config.CourtHeight) * 2

// Layout places the render area inside the terminal and the court inside
// the render area. HUD rows sit above and below the court.
type Layout struct {
	RenderCols, RenderRows int
	OffsetCol, OffsetRow   int // 0-based terminal offset of the render area
	CourtCol, CourtRow     int // Court viewport, relative to the render area
	CourtCols, CourtRows   int
	TooSmall               bool
}

// ComputeLayout fits the court into a termWidth x termHeight terminal,
// preserving its aspect ratio, and centers the result. Terminals below the
// minimum size get a full-area layout flagged TooSmall.
func ComputeLayout(termWidth, termHeight int) Layout {
	if termWidth < config.MinTermWidth || termHeight < config.MinTermHeight {
		return Layout{
			RenderCols: max(termWidth, 0),
			RenderRows: max(termHeight, 0),
			TooSmall:   true,
		}
	}

	hudRows := config.HUDTopRows + config.HUDBottomRows
	cols := min(termWidth, config.MaxTermWidth)
	rows := int(math.Round(float64(cols) / courtCellRatio))
	if avail := termHeight - hudRows; rows > avail {
		rows = avail
		cols = min(cols, int(math.Round(float64(rows)*courtCellRatio)))
	}

	l := Layout{
		RenderCols: cols,
		RenderRows: rows + hudRows,
		CourtCol:   0,
		CourtRow:   config.HUDTopRows,
		CourtCols:  cols,
		CourtRows:  rows,
	}
	l.OffsetCol = (termWidth - l.RenderCols) / 2
	l.OffsetRow = (termHeight - l.RenderRows) / 2
	return l
}

// Apply sizes and positions canvas for l.
func (l Layout) Apply(canvas *draw.Canvas) {
	canvas.Resize(l.RenderCols, l.RenderRows)
	canvas.SetViewport(l.CourtCol, l.CourtRow, l.CourtCols, l.CourtRows)
	canvas.SetOffset(l.OffsetCol, l.OffsetRow)
}
