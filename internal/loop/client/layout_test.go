package client

import (
	"testing"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/object"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want Layout
	}{
		{"height bound", 80, 24, Layout{
			RenderCols: 67, RenderRows: 24, OffsetCol: 6, OffsetRow: 0,
			CourtRow: 2, CourtCols: 67, CourtRows: 21,
		}},
		{"width bound", 160, 60, Layout{
			RenderCols: 160, RenderRows: 53, OffsetCol: 0, OffsetRow: 3,
			CourtRow: 2, CourtCols: 160, CourtRows: 50,
		}},
		{"wider than max", 200, 60, Layout{
			RenderCols: 160, RenderRows: 53, OffsetCol: 20, OffsetRow: 3,
			CourtRow: 2, CourtCols: 160, CourtRows: 50,
		}},
		{"minimum", 40, 14, Layout{
			RenderCols: 35, RenderRows: 14, OffsetCol: 2, OffsetRow: 0,
			CourtRow: 2, CourtCols: 35, CourtRows: 11,
		}},
		{"too narrow", 39, 30, Layout{RenderCols: 39, RenderRows: 30, TooSmall: true}},
		{"too short", 100, 13, Layout{RenderCols: 100, RenderRows: 13, TooSmall: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeLayout(tt.w, tt.h); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayoutKeepsCourtAspect(t *testing.T) {
	for w := config.MinTermWidth; w <= 220; w += 7 {
		for h := config.MinTermHeight; h <= 80; h += 5 {
			l := ComputeLayout(w, h)
			if l.RenderCols > w || l.RenderRows > h {
				t.Fatalf("%dx%d: render area %dx%d exceeds terminal", w, h, l.RenderCols, l.RenderRows)
			}
			ratio := float64(l.CourtCols) / float64(l.CourtRows*2)
			if ratio < 1.45 || ratio > 1.75 {
				t.Fatalf("%dx%d: court %dx%d has ratio %.2f", w, h, l.CourtCols, l.CourtRows, ratio)
			}
		}
	}
}

func TestLayoutApply(t *testing.T) {
	c := draw.NewScaledCanvas(0, 0, config.CourtWidth, config.CourtHeight)
	l := ComputeLayout(80, 24)
	l.Apply(c)

	if c.TerminalWidth() != l.RenderCols || c.TerminalHeight() != l.RenderRows {
		t.Fatalf("canvas %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
	col, row, cols, rows := c.Viewport()
	if col != 0 || row != config.HUDTopRows || cols != l.CourtCols || rows != l.CourtRows {
		t.Fatalf("viewport (%d,%d,%d,%d)", col, row, cols, rows)
	}
	if c.OffsetCol() != 6 {
		t.Fatalf("offset col = %d", c.OffsetCol())
	}
}

func TestScoreboard(t *testing.T) {
	g := match.New()
	b := NewScoreboard(g)
	if b.ScoreLine != "Player: 0 | CPU: 0" {
		t.Fatalf("score line %q", b.ScoreLine)
	}
	if b.SmashLine != "Player Smashes: 0 | CPU Smashes: 0" {
		t.Fatalf("smash line %q", b.SmashLine)
	}

	b.OnEvent(match.Event{Kind: match.EventPoint, Side: object.SideCPU, Score: match.Score{Player: 3, CPU: 7}})
	b.OnEvent(match.Event{Kind: match.EventSmashStats, Smashes: match.Score{Player: 2, CPU: 1}})
	if b.ScoreLine != "Player: 3 | CPU: 7" {
		t.Errorf("score line %q", b.ScoreLine)
	}
	if b.SmashLine != "Player Smashes: 2 | CPU Smashes: 1" {
		t.Errorf("smash line %q", b.SmashLine)
	}

	g.Start()
	if b.Controls.Start.Label != match.LabelRunning || b.Controls.Start.Enabled {
		t.Errorf("start control after Start = %+v", b.Controls.Start)
	}
	g.Reset()
	if b.Controls != match.IdleControls() || b.ScoreLine != "Player: 0 | CPU: 0" {
		t.Errorf("after Reset: %+v %q", b.Controls, b.ScoreLine)
	}
}
