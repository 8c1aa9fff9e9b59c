package match

import (
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/object"
)

// Banner text for smashes.
const (
	SmashText     = "SMASH!"
	MegaSmashText = "MEGA SMASH!"
)

const smashBannerRise = 30 // Banner sits this far above the contact point

// executeSmash applies a smash by side: counts it, speeds up and recolors
// the ball, bursts particles around the ball and shows the banner.
func (g *Game) executeSmash(side object.Side, power float64) {
	g.Paddle(side).SmashCount++
	b := g.ball
	b.ApplySmash(power)

	spread := config.ParticleJitter * (power - 1)
	for i := 0; i < config.ParticlesPerSmash; i++ {
		g.particles.Spawn(object.Particle{
			X:     b.X + spread*(g.rng.Float64()*2-1),
			Y:     b.Y + spread*(g.rng.Float64()*2-1),
			Life:  config.ParticleLife,
			Color: side.Accent(),
		})
	}

	text := SmashText
	if power >= config.MegaSmashPower {
		text = MegaSmashText
	}
	g.banner = &object.Banner{
		Text:  text,
		X:     b.X,
		Y:     b.Y - smashBannerRise,
		Color: side.Accent(),
		Font:  draw.Font{Size: 16, Bold: true},
		Ticks: config.SmashBannerTicks,
	}

	g.emit(Event{Kind: EventSmash, Side: side, Power: power})
	g.emit(Event{Kind: EventSmashStats})
}

// advanceEffects ages particles and the smash banner by one tick.
func (g *Game) advanceEffects() {
	g.particles.Advance()
	if g.banner != nil && g.banner.Update() {
		g.banner = nil
	}
}
