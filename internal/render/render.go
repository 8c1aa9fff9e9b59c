// Package render projects a match onto a draw.Surface. It only reads
// match state.
package render

import (
	"math"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/object"
)

// Court colors.
const (
	CourtColor draw.Color = 0x2E7D32
	LineColor             = draw.White
)

const centerCircleRadius = 30

// Banner texts.
const (
	PlayerWinsText = "YOU WIN!"
	CPUWinsText    = "CPU WINS!"
	PausedText     = "PAUSED"
)

// Instructions shown while the match is idle.
var Instructions = []string{
	"ACTION TENNIS vs CPU",
	"Move: arrows or WASD",
	"SMASH: hit while moving into the ball",
	"or against its direction",
	"Keep moving to charge your smash",
	"First to 10 wins - SPACE to start",
}

// Frame draws the whole court view of g: court, trail, particles,
// paddles, ball, charge bars and the overlays for the current phase.
func Frame(s draw.Surface, g *match.Game) {
	ctx := object.DrawContext{Surface: s}

	Court(s)
	g.Ball().Trail.Draw(ctx, CourtColor)
	g.Particles().Draw(ctx)
	g.Player().Draw(ctx)
	g.CPU().Draw(ctx)
	g.Ball().Draw(ctx)
	g.Player().DrawChargeBar(ctx)
	g.CPU().DrawChargeBar(ctx)

	if b := g.Banner(); b != nil {
		b.Draw(ctx)
	}

	switch g.Phase() {
	case match.PhaseIdle:
		instructions(s)
	case match.PhasePaused:
		centered(s, PausedText, draw.White, config.CourtHeight/2)
	case match.PhaseEnded:
		winner, _ := g.Winner()
		text, col := PlayerWinsText, draw.Color(0xFFFF00)
		if winner == object.SideCPU {
			text, col = CPUWinsText, draw.Red
		}
		centered(s, text, col, config.CourtHeight/2)
	}
}

// Court draws the background, outline, dashed center line and center circle.
func Court(s draw.Surface) {
	s.SetFillColor(CourtColor)
	s.FillRect(0, 0, config.CourtWidth, config.CourtHeight)

	s.SetStrokeColor(LineColor)
	s.SetLineWidth(3)
	s.StrokeRect(config.CourtMargin, config.CourtMargin,
		config.CourtWidth-2*config.CourtMargin, config.CourtHeight-2*config.CourtMargin)

	s.SetLineDash(10, 5)
	s.SetLineWidth(2)
	s.Line(config.CourtWidth/2, config.CourtMargin, config.CourtWidth/2, config.CourtHeight-config.CourtMargin)
	s.Arc(config.CourtWidth/2, config.CourtHeight/2, centerCircleRadius, 0, 2*math.Pi)
	s.SetLineDash()
}

func centered(s draw.Surface, text string, col draw.Color, y float64) {
	s.SetFillColor(col)
	s.SetFont(draw.Font{Size: 36, Bold: true})
	s.SetTextAlign(draw.AlignCenter)
	s.FillText(text, config.CourtWidth/2, y)
}

func instructions(s draw.Surface) {
	const spacing = 45
	top := config.CourtHeight/2 - spacing*float64(len(Instructions))/2
	s.SetFont(draw.Font{Size: 14})
	s.SetTextAlign(draw.AlignCenter)
	for i, line := range Instructions {
		col := draw.White
		if i == 0 {
			col = 0xFFD700
		}
		s.SetFillColor(col)
		s.FillText(line, config.CourtWidth/2, top+spacing*float64(i))
	}
}
