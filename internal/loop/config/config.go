// Package config centralizes all tunable game parameters.
package config

import "time"

// Court - the logical coordinate space of the simulation.
// Actual rendering scales to fit terminal size.
const (
	CourtWidth  = 800
	CourtHeight = 500
	CourtMargin = 5 // Boundary margin for paddles and walls
)

// Paddles
const (
	PaddleWidth  = 10
	PaddleHeight = 80
	PlayerX      = 20               // Player paddle starts here (left side)
	CPUX         = CourtWidth - 30  // CPU paddle x never changes
	PaddleStartY = CourtHeight/2 - PaddleHeight/2
	PlayerSpeed  = 8 // Units per tick per held direction
	CPUSpeed     = 6 // Units per tick
)

// CPU behaviour
const (
	CPUAimError      = 2.0 // Target y jitter, uniform in [-CPUAimError, +CPUAimError]
	CPUDeadband      = 5.0 // No movement while |center - target| <= deadband
	CPUBurstChance   = 0.1 // Per-tick chance of a reaction burst
	CPUBurstFactor   = 1.5 // Speed multiplier during a burst
	CPUBurstZone     = 0.6 // Bursts only once the ball is past this fraction of court width
	CPURushThreshold = CPUSpeed * 0.5
)

// Ball
const (
	BallSize      = 12
	BallSpeed     = 6   // Serve speed along x
	ServeMaxDY    = 3.0 // Serve dy is uniform in [-ServeMaxDY, +ServeMaxDY]
	TrailLength   = 8
	HitAngleScale = 4.0 // dy = hitOffset * HitAngleScale * power
)

// Charge and smash
const (
	MaxCharge         = 60 // Ticks (1 second at 60 Hz)
	ChargeDecay       = 2  // Ticks lost per still tick
	SmashEffectTicks  = 30
	ParticlesPerSmash = 8
	ParticleLife      = 20
	ParticleJitter    = 20.0 // Jitter radius per unit of power above 1
	SmashBannerTicks  = 60
	MegaSmashPower    = 2.0
	StrongSmashPower  = 1.5
)

// Smash power curves: base + chargeRatio*scale.
const (
	PlayerRushBase   = 1.5
	PlayerRushScale  = 1.0
	PlayerAngleBase  = 1.3
	PlayerAngleScale = 0.7
	CPURushBase      = 1.3
	CPURushScale     = 0.5
	CPUAngleBase     = 1.2
	CPUAngleScale    = 0.4
)

// Scoring
const (
	WinScore = 10
)

// Simulation tick rate. The client accumulates real time and runs fixed ticks.
const (
	TickRate         = 60
	TickTime         = time.Second / TickRate
	MaxCatchUpTicks  = 5
	ShutdownSeconds  = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTime = 15 * time.Second
)

// Session registry
const (
	LobbyTickTime  = 100 * time.Millisecond // Registry snapshot interval
	TopScoresCount = 5                      // Leaderboard entries in a lobby snapshot
	ClientEventBuf = 16
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	MaxTermWidth  = 160 // Max columns used for the court area
	MinTermWidth  = 40
	MinTermHeight = 14
	HUDTopRows    = 2 // Score line + smash stats line
	HUDBottomRows = 1 // Controls line
)
