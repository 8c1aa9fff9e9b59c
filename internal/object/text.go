package object

import (
	"github.com/tomz197/smashtennis/internal/draw"
)

// Banner is centered text shown for a fixed number of ticks.
// Ticks <= 0 means it stays until removed.
type Banner struct {
	Text  string
	X, Y  float64
	Color draw.Color
	Font  draw.Font
	Ticks int
}

// Update counts the banner down. Returns true once it has expired.
func (b *Banner) Update() bool {
	if b.Ticks <= 0 {
		return false
	}
	b.Ticks--
	return b.Ticks == 0
}

// Draw writes the banner text centered on (X, Y).
func (b *Banner) Draw(ctx DrawContext) {
	if b.Text == "" {
		return
	}
	s := ctx.Surface
	s.SetFillColor(b.Color)
	s.SetFont(b.Font)
	s.SetTextAlign(draw.AlignCenter)
	s.FillText(b.Text, b.X, b.Y)
}

var (
	_ Effect = (*Particle)(nil)
	_ Effect = (*Banner)(nil)
	_ Object = (*Paddle)(nil)
	_ Object = (*Ball)(nil)
	_ Object = (*Particles)(nil)
)
