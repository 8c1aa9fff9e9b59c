package client

import (
	"time"

	"github.com/tomz197/smashtennis/internal/loop/server"
)

// GameState is what the client screen currently shows.
type GameState int

const (
	GameStatePlaying  GameState = iota // Court, HUD and the match overlays
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-session state outside the match itself.
// Each client has its own instance, managed by the Client.
type ClientState struct {
	GameState     GameState
	Running       bool               // Client loop running
	delta         time.Duration      // Frame delta time
	accumulator   time.Duration      // Real time not yet consumed by simulation ticks
	shutdownTimer float64            // Countdown before auto-disconnect on shutdown
	isInactive    bool               // Whether the client is in inactive warning state
	lastStatus    server.MatchStatus // Last status reported to the server
	reported      bool

	// Previous-frame values; a change forces a full terminal clear.
	prevGameState GameState
	wasInactive   bool
	prevLayout    Layout
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStatePlaying,
		Running:   true,
	}
}
