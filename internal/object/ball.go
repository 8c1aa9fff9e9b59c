package object

import (
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/physics"
)

// Ball colors.
const (
	BallIdleColor   draw.Color = 0xFFEB3B
	BallMegaColor   draw.Color = 0xFF0000
	BallStrongColor draw.Color = 0xFF8C00
	BallSmashColor  draw.Color = 0xFFA500
	trailColor      draw.Color = 0xFFFF00
)

// SmashColor returns the ball color for a smash of the given power.
func SmashColor(power float64) draw.Color {
	switch {
	case power >= config.MegaSmashPower:
		return BallMegaColor
	case power >= config.StrongSmashPower:
		return BallStrongColor
	}
	return BallSmashColor
}

// Trail is a fixed-capacity FIFO of recent ball positions.
// Pushing onto a full trail evicts the oldest point.
type Trail struct {
	points [config.TrailLength]draw.Point
	start  int // Index of the oldest point
	n      int
}

// Push appends p, evicting the oldest point when full.
func (t *Trail) Push(p draw.Point) {
	if t.n < len(t.points) {
		t.points[(t.start+t.n)%len(t.points)] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return t.n
}

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) draw.Point {
	return t.points[(t.start+i)%len(t.points)]
}

// Points returns the stored points, oldest first.
func (t *Trail) Points() []draw.Point {
	out := make([]draw.Point, t.n)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

// Clear empties the trail.
func (t *Trail) Clear() {
	t.start, t.n = 0, 0
}

// Draw paints the trail as squares that grow and brighten toward the
// newest point. Transparency is approximated by blending toward the court.
func (t *Trail) Draw(ctx DrawContext, background draw.Color) {
	s := ctx.Surface
	for i := 0; i < t.n; i++ {
		p := t.At(i)
		alpha := float64(i+1) / float64(t.n)
		size := config.BallSize * alpha * 0.7
		s.SetFillColor(background.Mix(trailColor, alpha*0.5))
		s.FillRect(p.X-size/2, p.Y-size/2, size, size)
	}
}

// Ball is positioned by its center. DX/DY is the base velocity; the ball
// moves by base velocity times Multiplier each tick.
type Ball struct {
	X, Y        float64
	DX, DY      float64
	Multiplier  float64 // >= 1, back to 1 when EffectTimer runs out
	EffectTimer int     // Smash effect ticks remaining
	Color       draw.Color
	Trail       Trail
}

// NewBall creates a ball at court center with no effect.
func NewBall() *Ball {
	b := &Ball{}
	b.Serve(config.BallSpeed, 0)
	return b
}

// Serve puts the ball at center with the given base velocity and clears
// the smash effect and trail.
func (b *Ball) Serve(dx, dy float64) {
	b.X = config.CourtWidth / 2
	b.Y = config.CourtHeight / 2
	b.DX, b.DY = dx, dy
	b.ClearEffect()
	b.Trail.Clear()
}

// ClearEffect drops any smash effect.
func (b *Ball) ClearEffect() {
	b.Multiplier = 1
	b.EffectTimer = 0
	b.Color = BallIdleColor
}

// Move records the current position in the trail, integrates the
// effective velocity and counts down the smash effect.
func (b *Ball) Move() {
	b.Trail.Push(draw.Point{X: b.X, Y: b.Y})

	vx, vy := b.EffectiveVelocity()
	b.X += vx
	b.Y += vy

	if b.EffectTimer > 0 {
		b.EffectTimer--
		if b.EffectTimer == 0 {
			b.ClearEffect()
		}
	}
}

// EffectiveVelocity returns base velocity times the multiplier.
func (b *Ball) EffectiveVelocity() (vx, vy float64) {
	return b.DX * b.Multiplier, b.DY * b.Multiplier
}

// ApplySmash starts the smash effect: the multiplier becomes power and
// the color reflects its tier.
func (b *Ball) ApplySmash(power float64) {
	b.EffectTimer = config.SmashEffectTicks
	b.Multiplier = max(power, 1)
	b.Color = SmashColor(power)
}

// Bounds returns the ball's square.
func (b *Ball) Bounds() physics.Rect {
	return physics.CenteredRect(b.X, b.Y, config.BallSize, config.BallSize)
}

// Draw fills the ball in its current color with a white outline.
func (b *Ball) Draw(ctx DrawContext) {
	s := ctx.Surface
	r := b.Bounds()
	s.SetFillColor(b.Color)
	s.FillRect(r.X, r.Y, r.W, r.H)
	s.SetStrokeColor(draw.White)
	s.SetLineWidth(2)
	s.StrokeRect(r.X, r.Y, r.W, r.H)
}
