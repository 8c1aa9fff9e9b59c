package object

import (
	"github.com/tomz197/smashtennis/internal/draw"
)

// Particle is one square of a smash burst.
type Particle struct {
	X, Y  float64
	Life  int // Ticks remaining
	Color draw.Color
}

// Update decrements life. Returns true once the particle is spent.
func (p *Particle) Update() bool {
	p.Life--
	return p.Life <= 0
}

// Draw paints a square whose half-size shrinks with remaining life.
func (p *Particle) Draw(ctx DrawContext) {
	if p.Life <= 0 {
		return
	}
	size := float64(p.Life) * 0.5
	ctx.Surface.SetFillColor(p.Color)
	ctx.Surface.FillRect(p.X-size, p.Y-size, size*2, size*2)
}

// Particles is an unordered collection of live particles.
type Particles struct {
	items []Particle
}

// Spawn adds a particle.
func (ps *Particles) Spawn(p Particle) {
	ps.items = append(ps.items, p)
}

// Advance ages every particle by one tick and drops the spent ones.
func (ps *Particles) Advance() {
	kept := ps.items[:0]
	for i := range ps.items {
		if !ps.items[i].Update() {
			kept = append(kept, ps.items[i])
		}
	}
	ps.items = kept
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// All returns the live particles. The slice is only valid until the next
// Spawn, Advance or Clear.
func (ps *Particles) All() []Particle {
	return ps.items
}

// Clear removes all particles.
func (ps *Particles) Clear() {
	ps.items = ps.items[:0]
}

// Draw paints every live particle.
func (ps *Particles) Draw(ctx DrawContext) {
	for i := range ps.items {
		ps.items[i].Draw(ctx)
	}
}
