package match

import (
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/physics"
)

// cpuTarget returns the CPU paddle's next y. It aims at the ball's y with
// a small random error, occasionally bursts when the ball approaches deep
// in its half, holds inside a deadband and stays within the court.
// The CPU never moves horizontally.
func cpuTarget(paddleY, ballX, ballY, ballDX float64, rng Random) float64 {
	target := ballY + (rng.Float64()*2-1)*config.CPUAimError

	speed := float64(config.CPUSpeed)
	if ballDX > 0 && ballX > config.CourtWidth*config.CPUBurstZone && rng.Float64() < config.CPUBurstChance {
		speed *= config.CPUBurstFactor
	}

	center := paddleY + config.PaddleHeight/2
	switch {
	case center < target-config.CPUDeadband:
		paddleY += speed
	case center > target+config.CPUDeadband:
		paddleY -= speed
	}

	return physics.Clamp(paddleY, config.CourtMargin, config.CourtHeight-config.PaddleHeight-config.CourtMargin)
}
