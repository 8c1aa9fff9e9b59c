package match

import (
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/object"
	"github.com/tomz197/smashtennis/internal/physics"
)

// Wall bounds for the ball center.
const (
	wallTop    = config.BallSize/2 + config.CourtMargin
	wallBottom = config.CourtHeight - config.BallSize/2 - config.CourtMargin
)

// stepBall moves the ball, reflects it off walls and paddles and scores
// when it leaves the court.
func (g *Game) stepBall() {
	b := g.ball
	b.Move()

	// No position correction: the ball may overlap the wall for a tick.
	if b.Y <= wallTop || b.Y >= wallBottom {
		b.DY = -b.DY
		g.emit(Event{Kind: EventWallBounce})
	}

	// Direction gates stop a ball still inside a paddle from bouncing twice.
	if b.DX < 0 && b.Bounds().Overlaps(g.player.Bounds()) {
		g.hit(g.player)
	}
	if b.DX > 0 && b.Bounds().Overlaps(g.cpu.Bounds()) {
		g.hit(g.cpu)
	}

	switch {
	case b.X < 0:
		g.point(object.SideCPU)
	case b.X > config.CourtWidth:
		g.point(object.SidePlayer)
	}
}

// hit returns the ball off p and runs the smash when one triggered.
func (g *Game) hit(p *object.Paddle) {
	power, smash := returnBall(g.ball, p)
	g.emit(Event{Kind: EventHit, Side: p.Side, Power: power})
	if smash {
		g.executeSmash(p.Side, power)
		p.ChargeTime = 0
	}
}

// smashPower evaluates both smash triggers for a contact between p and a
// ball moving vertically by ballDY. When both fire the larger power wins.
// Without a smash the power is 1.
func smashPower(p *object.Paddle, ballDY float64) (power float64, smash bool) {
	vx, vy := p.Velocity()
	ratio := p.ChargeRatio()
	power = 1

	switch p.Side {
	case object.SidePlayer:
		if vx > 0 {
			smash = true
			power = config.PlayerRushBase + ratio*config.PlayerRushScale
		}
		if physics.Opposing(ballDY, vy) {
			smash = true
			power = max(power, config.PlayerAngleBase+ratio*config.PlayerAngleScale)
		}
	case object.SideCPU:
		if vx < 0 {
			smash = true
			power = config.CPURushBase + ratio*config.CPURushScale
		}
		if physics.Abs(vy) > config.CPURushThreshold {
			smash = true
			power = max(power, config.CPUAngleBase+ratio*config.CPUAngleScale)
		}
	}
	return power, smash
}

// returnBall sends the ball back toward the opponent. Speed along x scales
// by the hit power; the vertical component comes from where the ball met
// the paddle, from -1 at the top edge to 1 at the bottom.
func returnBall(b *object.Ball, p *object.Paddle) (power float64, smash bool) {
	power, smash = smashPower(p, b.DY)

	offset := (b.Y - p.CenterY()) / (config.PaddleHeight / 2)
	dir := 1.0
	if p.Side == object.SideCPU {
		dir = -1
	}
	b.DX = dir * physics.Abs(b.DX) * power
	b.DY = offset * config.HitAngleScale * power
	return power, smash
}

// point credits side, serves a fresh ball and ends the match at the win score.
func (g *Game) point(side object.Side) {
	if side == object.SideCPU {
		g.score.CPU++
	} else {
		g.score.Player++
	}
	g.serve()
	g.particles.Clear()
	g.banner = nil
	g.emit(Event{Kind: EventPoint, Side: side})

	if g.score.Get(side) >= config.WinScore {
		g.gameOver(side)
	}
}

// serve centers the ball with a random direction along x and a random
// vertical speed.
func (g *Game) serve() {
	dx := float64(config.BallSpeed)
	if g.rng.Float64() <= 0.5 {
		dx = -dx
	}
	dy := (g.rng.Float64()*2 - 1) * config.ServeMaxDY
	g.ball.Serve(dx, dy)
}

func (g *Game) gameOver(winner object.Side) {
	g.running = false
	g.paused = false
	g.winner = winner
	g.hasWinner = true
	g.emit(Event{Kind: EventGameOver, Side: winner})

	c := g.controls
	c.Start = Control{Label: LabelGameOver, Enabled: false}
	c.Pause.Label = LabelPause
	g.setControls(c)
}
