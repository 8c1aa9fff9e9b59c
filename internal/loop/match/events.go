package match

import (
	"github.com/tomz197/smashtennis/internal/object"
)

// EventKind identifies what happened in a match.
type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventResumed
	EventReset
	EventHit        // Any paddle contact; Side and Power set
	EventSmash      // Side and Power set
	EventWallBounce // Ball reflected off the top or bottom wall
	EventPoint      // Side is the scorer
	EventGameOver   // Side is the winner
	EventSmashStats // Smashes changed
	EventControls   // Controls changed
)

var eventNames = [...]string{
	EventStarted:    "started",
	EventPaused:     "paused",
	EventResumed:    "resumed",
	EventReset:      "reset",
	EventHit:        "hit",
	EventSmash:      "smash",
	EventWallBounce: "wall_bounce",
	EventPoint:      "point",
	EventGameOver:   "game_over",
	EventSmashStats: "smash_stats",
	EventControls:   "controls",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Score is a pair of per-side counters.
type Score struct {
	Player int `json:"player"`
	CPU    int `json:"cpu"`
}

// Get returns the counter for side.
func (s Score) Get(side object.Side) int {
	if side == object.SideCPU {
		return s.CPU
	}
	return s.Player
}

// Control is one labeled button-like affordance.
type Control struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Controls is the state of the start, pause and reset affordances.
type Controls struct {
	Start Control `json:"start"`
	Pause Control `json:"pause"`
	Reset Control `json:"reset"`
}

// Control labels.
const (
	LabelStart    = "Start"
	LabelRunning  = "Running..."
	LabelGameOver = "Game Over"
	LabelPause    = "Pause"
	LabelResume   = "Resume"
	LabelReset    = "Reset"
)

// IdleControls is the control state of a freshly reset match.
func IdleControls() Controls {
	return Controls{
		Start: Control{Label: LabelStart, Enabled: true},
		Pause: Control{Label: LabelPause, Enabled: true},
		Reset: Control{Label: LabelReset, Enabled: true},
	}
}

// Event describes a state change. Score and Smashes are always current.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Side     object.Side
	Power    float64
	Score    Score
	Smashes  Score
	Controls Controls
}

// Listener receives match events synchronously, on the goroutine driving the match.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}
