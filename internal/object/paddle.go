package object

import (
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/physics"
)

// Palette is a paddle's color tiers by charge.
type Palette struct {
	Base, Warm, Hot draw.Color
}

var (
	PlayerPalette = Palette{Base: 0x2196F3, Warm: 0x9C27B0, Hot: 0xFF4081}
	CPUPalette    = Palette{Base: 0xF44336, Warm: 0xE91E63, Hot: 0xFF9800}
)

// ForCharge picks the tier for a charge time in ticks.
func (p Palette) ForCharge(charge int) draw.Color {
	switch {
	case charge > 30:
		return p.Hot
	case charge > 15:
		return p.Warm
	}
	return p.Base
}

// Charge bar geometry relative to the paddle's top-left corner.
const (
	chargeBarOffsetX = -10
	chargeBarOffsetY = -15
	chargeBarWidth   = 60
	chargeBarHeight  = 6
)

// ChargeBarColor picks the charge bar fill for a charge ratio in [0,1].
// Both sides share the player's palette here.
func ChargeBarColor(ratio float64) draw.Color {
	switch {
	case ratio > 0.5:
		return PlayerPalette.Hot
	case ratio > 0.25:
		return PlayerPalette.Warm
	}
	return PlayerPalette.Base
}

// Paddle is one side's bat. Position is the top-left corner.
type Paddle struct {
	Side         Side
	X, Y         float64
	PrevX, PrevY float64
	ChargeTime   int // Ticks, clamped to [0, MaxCharge]
	SmashCount   int
}

// NewPaddle creates a paddle at its side's starting position.
func NewPaddle(side Side) *Paddle {
	p := &Paddle{Side: side}
	p.Reset()
	return p
}

// Reset restores the starting position and clears charge and smash count.
func (p *Paddle) Reset() {
	p.X = config.PlayerX
	if p.Side == SideCPU {
		p.X = config.CPUX
	}
	p.Y = config.PaddleStartY
	p.PrevX, p.PrevY = p.X, p.Y
	p.ChargeTime = 0
	p.SmashCount = 0
}

// BeginTick records the current position as the previous one.
// Velocity is measured from here to wherever the paddle ends the tick.
func (p *Paddle) BeginTick() {
	p.PrevX, p.PrevY = p.X, p.Y
}

// Velocity returns this tick's displacement.
func (p *Paddle) Velocity() (vx, vy float64) {
	return p.X - p.PrevX, p.Y - p.PrevY
}

// UpdateCharge grows charge by one while the paddle moved this tick and
// decays it otherwise.
func (p *Paddle) UpdateCharge() {
	vx, vy := p.Velocity()
	if vx != 0 || vy != 0 {
		p.ChargeTime++
	} else {
		p.ChargeTime -= config.ChargeDecay
	}
	p.ChargeTime = physics.ClampInt(p.ChargeTime, 0, config.MaxCharge)
}

// ChargeRatio returns charge as a fraction of the maximum, in [0,1].
func (p *Paddle) ChargeRatio() float64 {
	if config.MaxCharge <= 0 {
		return 0
	}
	return physics.Clamp(float64(p.ChargeTime)/config.MaxCharge, 0, 1)
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: config.PaddleWidth, H: config.PaddleHeight}
}

// CenterY returns the vertical center of the paddle.
func (p *Paddle) CenterY() float64 {
	return p.Y + config.PaddleHeight/2
}

// Palette returns the side's color tiers.
func (p *Paddle) Palette() Palette {
	if p.Side == SideCPU {
		return CPUPalette
	}
	return PlayerPalette
}

// Draw fills the paddle in its charge color with a white outline.
func (p *Paddle) Draw(ctx DrawContext) {
	s := ctx.Surface
	s.SetFillColor(p.Palette().ForCharge(p.ChargeTime))
	s.FillRect(p.X, p.Y, config.PaddleWidth, config.PaddleHeight)
	s.SetStrokeColor(draw.White)
	s.SetLineWidth(2)
	s.StrokeRect(p.X, p.Y, config.PaddleWidth, config.PaddleHeight)
}

// DrawChargeBar draws the charge meter above the paddle. Nothing is drawn
// without charge.
func (p *Paddle) DrawChargeBar(ctx DrawContext) {
	if p.ChargeTime <= 0 {
		return
	}
	s := ctx.Surface
	x, y := p.X+chargeBarOffsetX, p.Y+chargeBarOffsetY
	ratio := p.ChargeRatio()

	s.SetFillColor(draw.DarkGray)
	s.FillRect(x, y, chargeBarWidth, chargeBarHeight)
	s.SetStrokeColor(draw.White)
	s.SetLineWidth(1)
	s.StrokeRect(x, y, chargeBarWidth, chargeBarHeight)

	s.SetFillColor(ChargeBarColor(ratio))
	s.FillRect(x, y, chargeBarWidth*ratio, chargeBarHeight)
}
