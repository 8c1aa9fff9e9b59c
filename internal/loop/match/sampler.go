package match

import (
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/object"
)

// samplePlayer moves the player paddle by one step per held direction.
// Each axis moves independently, so diagonals are not normalized.
// A direction only applies while the paddle is inside its bound; there
// is no clamp after the step.
func samplePlayer(p *object.Paddle, in input.Snapshot) {
	if in.Up && p.Y > config.CourtMargin {
		p.Y -= config.PlayerSpeed
	}
	if in.Down && p.Y < config.CourtHeight-config.PaddleHeight-config.CourtMargin {
		p.Y += config.PlayerSpeed
	}
	if in.Left && p.X > config.CourtMargin {
		p.X -= config.PlayerSpeed
	}
	if in.Right && p.X < config.CourtWidth/2-config.PaddleWidth-config.CourtMargin {
		p.X += config.PlayerSpeed
	}
}
