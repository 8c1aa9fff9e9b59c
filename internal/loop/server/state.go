package server

import (
	"cmp"
	"slices"
	"time"

	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
)

// MatchStatus is the publicly visible state of one session's match.
type MatchStatus struct {
	Phase   string      `json:"phase"`
	Score   match.Score `json:"score"`
	Smashes match.Score `json:"smashes"`
	Winner  string      `json:"winner,omitempty"`
}

// StatusOf summarizes g.
func StatusOf(g *match.Game) MatchStatus {
	st := MatchStatus{
		Phase:   g.Phase().String(),
		Score:   g.Score(),
		Smashes: g.Smashes(),
	}
	if w, ok := g.Winner(); ok {
		st.Winner = w.String()
	}
	return st
}

// SessionStatus is one entry of a lobby snapshot.
type SessionStatus struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Joined   time.Time   `json:"joined"`
	Match    MatchStatus `json:"match"`
}

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	seq      uint64 // Used for deterministic tie-break when scores are equal
}

// LobbySnapshot is an immutable view of all sessions.
type LobbySnapshot struct {
	Sessions  []SessionStatus `json:"sessions"`
	Players   int             `json:"players"`
	TopScores []TopScoreEntry `json:"top_scores"` // Player points of running or finished matches
	Taken     time.Time       `json:"taken"`
}

// LobbyState holds the registry's view of the sessions. Only the server
// goroutine touches it.
type LobbyState struct {
	handles  map[string]*ClientHandle
	departed map[string]struct{} // Unregistered before their registration was processed
	dirty    bool
}

// NewLobbyState creates an empty lobby.
func NewLobbyState() *LobbyState {
	return &LobbyState{
		handles:  make(map[string]*ClientHandle),
		departed: make(map[string]struct{}),
	}
}

// Add tracks a newly registered session.
func (l *LobbyState) Add(h *ClientHandle) {
	if _, gone := l.departed[h.ID]; gone {
		delete(l.departed, h.ID)
		return
	}
	l.handles[h.ID] = h
	l.dirty = true
}

// Remove forgets a session.
func (l *LobbyState) Remove(id string) {
	if _, ok := l.handles[id]; !ok {
		l.departed[id] = struct{}{}
		return
	}
	delete(l.handles, id)
	l.dirty = true
}

// Update records the latest match status of a session. Unknown sessions
// and unchanged statuses are ignored.
func (l *LobbyState) Update(id string, st MatchStatus) {
	h, ok := l.handles[id]
	if !ok || h.Status == st {
		return
	}
	h.Status = st
	l.dirty = true
}

// Len returns the number of tracked sessions.
func (l *LobbyState) Len() int {
	return len(l.handles)
}

// Snapshot builds a snapshot ordered by join order and clears the dirty flag.
func (l *LobbyState) Snapshot(now time.Time) *LobbySnapshot {
	handles := make([]*ClientHandle, 0, len(l.handles))
	for _, h := range l.handles {
		handles = append(handles, h)
	}
	slices.SortFunc(handles, func(a, b *ClientHandle) int {
		return cmp.Compare(a.seq, b.seq)
	})

	snap := &LobbySnapshot{
		Sessions: make([]SessionStatus, 0, len(handles)),
		Players:  len(handles),
		Taken:    now,
	}
	for _, h := range handles {
		snap.Sessions = append(snap.Sessions, SessionStatus{
			ID:       h.ID,
			Username: h.Username,
			Joined:   h.Joined,
			Match:    h.Status,
		})
		if h.Status.Phase != match.PhaseIdle.String() {
			snap.TopScores = append(snap.TopScores, TopScoreEntry{
				Username: h.Username,
				Score:    h.Status.Score.Player,
				seq:      h.seq,
			})
		}
	}
	snap.TopScores = topScores(snap.TopScores, config.TopScoresCount)

	l.dirty = false
	return snap
}

// topScores sorts entries by score descending, earlier joiners first on
// ties, and keeps at most n.
func topScores(entries []TopScoreEntry, n int) []TopScoreEntry {
	slices.SortStableFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
