package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/loop/server"
)

// Client runs one match for a single terminal: it reads input, drives the
// simulation in fixed ticks and draws frames.
type Client struct {
	server    server.GameServer
	handle    *server.ClientHandle
	state     *ClientState
	game      *match.Game
	board     *Scoreboard
	canvas    *draw.Canvas
	layout    Layout
	presenter Presenter
	input     input.Source
	logger    *log.Logger
	lastInput time.Time
	frameTime time.Duration
}

// ClientOptions configures the client.
type ClientOptions struct {
	Username  string
	Presenter Presenter
	Input     input.Source
	Logger    *log.Logger      // Defaults to a discarding logger
	FrameTime time.Duration    // Render interval; defaults to one simulation tick
	Listeners []match.Listener // Extra match listeners (metrics, sound, live feed)
	Match     []match.Option
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.TickTime
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("session", handle.ID)

	game := match.New(opts.Match...)
	board := NewScoreboard(game)
	game.Subscribe(LogEvents(logger))
	for _, l := range opts.Listeners {
		game.Subscribe(l)
	}

	return &Client{
		server:    gs,
		handle:    handle,
		state:     NewClientState(),
		game:      game,
		board:     board,
		canvas:    draw.NewScaledCanvas(0, 0, config.CourtWidth, config.CourtHeight),
		presenter: opts.Presenter,
		input:     opts.Input,
		logger:    logger,
		lastInput: time.Now(),
		frameTime: frameTime,
	}
}

// ID returns the session ID assigned by the server.
func (c *Client) ID() string {
	return c.handle.ID
}

// Game returns the client's match.
func (c *Client) Game() *match.Game {
	return c.game
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, the server stops or ctx is cancelled. Output errors end the loop
// and are returned.
func (c *Client) Run(ctx context.Context) error {
	defer c.server.UnregisterClient(c.handle.ID)

	if err := c.presenter.Begin(); err != nil {
		return fmt.Errorf("prepare terminal: %w", err)
	}
	defer c.presenter.End()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		// Process input
		c.processInput(frameStart)

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		switch c.state.GameState {
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		c.reportStatus()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	c.logger.Debug("client loop ended", "phase", c.game.Phase(), "ticks", c.game.Ticks())
	return nil
}

// processInput polls the input source and applies commands.
func (c *Client) processInput(now time.Time) {
	f := c.input.Poll(now)

	if f.Active {
		c.lastInput = now
		c.state.isInactive = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if now.Sub(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if f.Closed || f.Has(input.CmdQuit) {
		c.state.Running = false
		return
	}

	if c.state.GameState != GameStatePlaying {
		return
	}
	for _, cmd := range f.Commands {
		switch cmd {
		case input.CmdStart:
			c.game.Start()
		case input.CmdPause:
			c.game.TogglePause()
		case input.CmdReset:
			c.game.Reset()
			c.state.accumulator = 0
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownSeconds
			}
		default:
			return
		}
	}
}

// updateScreen re-fits the canvas when the terminal size changed.
func (c *Client) updateScreen() {
	cols, rows, err := c.presenter.Size()
	if err != nil {
		return
	}
	l := ComputeLayout(cols, rows)
	if l != c.layout {
		c.layout = l
		l.Apply(c.canvas)
	}
}

// updatePlayingState runs the simulation ticks owed for the elapsed real time.
func (c *Client) updatePlayingState() {
	if !c.game.Running() || c.game.Paused() {
		c.state.accumulator = 0
		return
	}
	c.state.accumulator += c.state.delta
	if limit := config.MaxCatchUpTicks * config.TickTime; c.state.accumulator > limit {
		c.state.accumulator = limit
	}
	for c.state.accumulator >= config.TickTime {
		c.state.accumulator -= config.TickTime
		if !c.game.Tick(c.input.Snapshot()) {
			c.state.accumulator = 0
			return
		}
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// reportStatus sends the match status to the server when it changed.
func (c *Client) reportStatus() {
	st := server.StatusOf(c.game)
	if c.state.reported && st == c.state.lastStatus {
		return
	}
	c.server.SendStatus(c.handle.ID, st)
	c.state.lastStatus = st
	c.state.reported = true
}
