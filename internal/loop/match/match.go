// Package match is the tennis simulation: input sampling, the CPU
// controller, ball physics, the smash state and the start/pause/reset
// state machine. It has no I/O; observers subscribe to events.
package match

import (
	"math/rand"

	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/object"
)

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	}
	return "idle"
}

// Random is the source of randomness for serves, CPU aim and particles.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source.
func WithRand(r Random) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithListener subscribes l to events from construction on.
func WithListener(l Listener) Option {
	return func(g *Game) {
		g.listeners = append(g.listeners, l)
	}
}

// Game owns the whole match state. It is not safe for concurrent use; one
// goroutine drives it and listeners run on that goroutine.
type Game struct {
	player    *object.Paddle
	cpu       *object.Paddle
	ball      *object.Ball
	particles object.Particles
	banner    *object.Banner // Latest smash banner, nil when none

	score     Score
	running   bool
	paused    bool
	winner    object.Side
	hasWinner bool
	controls  Controls
	tick      uint64

	rng       Random
	listeners []Listener
}

// New creates a match in the Idle phase.
func New(opts ...Option) *Game {
	g := &Game{
		player: object.NewPaddle(object.SidePlayer),
		cpu:    object.NewPaddle(object.SideCPU),
		ball:   object.NewBall(),
		rng:    globalRand{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reinit()
	return g
}

// Subscribe adds a listener.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Phase reports the lifecycle state.
func (g *Game) Phase() Phase {
	switch {
	case g.running && g.paused:
		return PhasePaused
	case g.running:
		return PhaseRunning
	case g.hasWinner:
		return PhaseEnded
	}
	return PhaseIdle
}

// Running reports whether the match is started and not over.
func (g *Game) Running() bool { return g.running }

// Paused reports whether a running match is paused.
func (g *Game) Paused() bool { return g.paused }

func (g *Game) Player() *object.Paddle { return g.player }
func (g *Game) CPU() *object.Paddle { return g.cpu }
func (g *Game) Ball() *object.Ball { return g.ball }
func (g *Game) Particles() *object.Particles { return &g.particles }
func (g *Game) Banner() *object.Banner { return g.banner }
func (g *Game) Score() Score { return g.score }
func (g *Game) Controls() Controls { return g.controls }
func (g *Game) Ticks() uint64 { return g.tick }

// Smashes returns the per-side smash counters.
func (g *Game) Smashes() Score {
	return Score{Player: g.player.SmashCount, CPU: g.cpu.SmashCount}
}

// Winner returns the winning side once the match has ended.
func (g *Game) Winner() (object.Side, bool) {
	return g.winner, g.hasWinner
}

// Paddle returns the paddle of side.
func (g *Game) Paddle(side object.Side) *object.Paddle {
	if side == object.SideCPU {
		return g.cpu
	}
	return g.player
}

// Start moves Idle to Running. It does nothing while running and after
// the match has ended; an ended match needs Reset first.
func (g *Game) Start() bool {
	if g.running || g.hasWinner {
		return false
	}
	g.running = true
	g.paused = false
	g.emit(Event{Kind: EventStarted})

	c := g.controls
	c.Start = Control{Label: LabelRunning, Enabled: false}
	g.setControls(c)
	return true
}

// TogglePause switches between Running and Paused. It does nothing unless running.
func (g *Game) TogglePause() bool {
	if !g.running {
		return false
	}
	g.paused = !g.paused

	c := g.controls
	if g.paused {
		g.emit(Event{Kind: EventPaused})
		c.Pause.Label = LabelResume
	} else {
		g.emit(Event{Kind: EventResumed})
		c.Pause.Label = LabelPause
	}
	g.setControls(c)
	return true
}

// Reset returns to Idle from any phase with scores, charges, smash counts,
// positions and ball state reinitialized.
func (g *Game) Reset() {
	g.reinit()
	g.emit(Event{Kind: EventReset})
	g.emit(Event{Kind: EventSmashStats})
	g.emit(Event{Kind: EventControls})
}

func (g *Game) reinit() {
	g.running = false
	g.paused = false
	g.hasWinner = false
	g.winner = object.SidePlayer
	g.score = Score{}
	g.player.Reset()
	g.cpu.Reset()
	g.particles.Clear()
	g.banner = nil
	g.serve()
	g.controls = IdleControls()
}

// Tick runs one simulation step if the match is running and not paused:
// input sampler, CPU controller, physics, then effect aging, in that order.
// Returns whether a step ran.
func (g *Game) Tick(in input.Snapshot) bool {
	if !g.running || g.paused {
		return false
	}
	g.tick++

	g.player.BeginTick()
	samplePlayer(g.player, in)
	g.player.UpdateCharge()

	g.cpu.BeginTick()
	g.cpu.Y = cpuTarget(g.cpu.Y, g.ball.X, g.ball.Y, g.ball.DX, g.rng)
	g.cpu.UpdateCharge()

	g.stepBall()
	g.advanceEffects()
	return true
}

func (g *Game) emit(e Event) {
	e.Tick = g.tick
	e.Score = g.score
	e.Smashes = g.Smashes()
	e.Controls = g.controls
	for _, l := range g.listeners {
		l.OnEvent(e)
	}
}

func (g *Game) setControls(c Controls) {
	if c == g.controls {
		return
	}
	g.controls = c
	g.emit(Event{Kind: EventControls})
}
