// Package live streams match events and lobby snapshots to websocket
// spectators.
package live

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/loop/server"
)

// Message is the JSON structure sent to spectators.
type Message struct {
	Type    string                `json:"t"`
	Session string                `json:"id,omitempty"`
	Side    string                `json:"s,omitempty"`
	Power   float64               `json:"pw,omitempty"`
	Score   *match.Score          `json:"sc,omitempty"`
	Smashes *match.Score          `json:"sm,omitempty"`
	Lobby   *server.LobbySnapshot `json:"lobby,omitempty"`
}

// Message types.
const (
	TypeLobby    = "lobby"
	TypeStarted  = "started"
	TypeReset    = "reset"
	TypeSmash    = "smash"
	TypePoint    = "point"
	TypeGameOver = "game_over"
)

// Client is one websocket spectator.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump writes queued messages until ctx ends or Send is closed.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub fans messages out to spectators.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	lobby   []byte // Last lobby message, sent to new spectators
	logger  *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register adds a client and queues the last lobby snapshot for it.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
	if h.lobby != nil {
		select {
		case c.Send <- h.lobby:
		default:
		}
	}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// Count returns the number of spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Non-blocking: slow clients miss messages.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal live message", "type", msg.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if msg.Type == TypeLobby {
		h.lobby = data
	}
	for _, c := range h.clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// PublishLobby broadcasts a lobby snapshot. It fits server.WithSnapshotHook.
func (h *Hub) PublishLobby(snap *server.LobbySnapshot) {
	h.Broadcast(Message{Type: TypeLobby, Lobby: snap})
}

// Listener returns a match listener publishing the notable events of one session.
func (h *Hub) Listener(session string) match.Listener {
	return match.ListenerFunc(func(e match.Event) {
		msg := Message{Session: session}
		switch e.Kind {
		case match.EventStarted:
			msg.Type = TypeStarted
		case match.EventReset:
			msg.Type = TypeReset
		case match.EventSmash:
			msg.Type = TypeSmash
			msg.Side = e.Side.String()
			msg.Power = e.Power
		case match.EventPoint:
			msg.Type = TypePoint
			msg.Side = e.Side.String()
		case match.EventGameOver:
			msg.Type = TypeGameOver
			msg.Side = e.Side.String()
		default:
			return
		}
		score, smashes := e.Score, e.Smashes
		msg.Score, msg.Smashes = &score, &smashes
		h.Broadcast(msg)
	})
}
