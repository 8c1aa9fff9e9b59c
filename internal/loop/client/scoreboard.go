package client

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tomz197/smashtennis/internal/loop/match"
)

// Scoreboard keeps the HUD texts in sync with a match: the score line,
// the smash statistics line and the control row.
type Scoreboard struct {
	ScoreLine string
	SmashLine string
	Controls  match.Controls
}

// NewScoreboard creates a scoreboard showing g's current state and
// subscribes it to g.
func NewScoreboard(g *match.Game) *Scoreboard {
	b := &Scoreboard{Controls: g.Controls()}
	b.setScore(g.Score())
	b.setSmashes(g.Smashes())
	g.Subscribe(b)
	return b
}

// OnEvent implements match.Listener.
func (b *Scoreboard) OnEvent(e match.Event) {
	switch e.Kind {
	case match.EventPoint, match.EventReset, match.EventGameOver:
		b.setScore(e.Score)
	case match.EventSmashStats:
		b.setSmashes(e.Smashes)
	case match.EventControls:
		b.Controls = e.Controls
	}
}

func (b *Scoreboard) setScore(s match.Score) {
	b.ScoreLine = fmt.Sprintf("Player: %d | CPU: %d", s.Player, s.CPU)
}

func (b *Scoreboard) setSmashes(s match.Score) {
	b.SmashLine = fmt.Sprintf("Player Smashes: %d | CPU Smashes: %d", s.Player, s.CPU)
}

// LogEvents returns a listener writing notable match events to logger.
func LogEvents(logger *log.Logger) match.Listener {
	return match.ListenerFunc(func(e match.Event) {
		switch e.Kind {
		case match.EventStarted, match.EventReset, match.EventPaused, match.EventResumed:
			logger.Debug(e.Kind.String(), "tick", e.Tick)
		case match.EventSmash:
			logger.Debug("smash", "side", e.Side, "power", fmt.Sprintf("%.2f", e.Power))
		case match.EventPoint:
			logger.Info("point", "scorer", e.Side, "player", e.Score.Player, "cpu", e.Score.CPU)
		case match.EventGameOver:
			logger.Info("game over", "winner", e.Side,
				"player", e.Score.Player, "cpu", e.Score.CPU,
				"player_smashes", e.Smashes.Player, "cpu_smashes", e.Smashes.CPU)
		}
	})
}
