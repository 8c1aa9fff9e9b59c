package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tomz197/smashtennis/internal/loop/config"
)

// GameServer is the interface clients use to talk to the session registry.
// Decouples the Client from the concrete Server implementation, enabling
// testing with a fake.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID string)
	SendStatus(clientID string, status MatchStatus)
	GetSnapshot() *LobbySnapshot
}

// Server tracks connected sessions and the state of their matches. Every
// session plays its own match; the server only aggregates their status and
// broadcasts server-wide events such as shutdown.
type Server struct {
	state        *LobbyState
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[string]*ClientHandle
	statusChan   chan ClientStatus
	registerCh   chan *ClientHandle
	unregisterCh chan string
	mu           sync.RWMutex
	seq          uint64
	onChange     func(*LobbySnapshot)
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       string
	Username string
	Joined   time.Time
	Status   MatchStatus
	EventsCh chan ClientEvent // Events sent to client (shutdown, ...)
	seq      uint64           // Join order, used for deterministic tie-breaks
}

// ClientStatus is a status report from a specific client.
type ClientStatus struct {
	ClientID string
	Status   MatchStatus
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Option configures a Server.
type Option func(*Server)

// WithSnapshotHook calls fn with every new snapshot whose content changed.
// fn runs on the server goroutine and must not block.
func WithSnapshotHook(fn func(*LobbySnapshot)) Option {
	return func(s *Server) {
		s.onChange = fn
	}
}

// NewServer creates a new session registry.
func NewServer(opts ...Option) *Server {
	s := &Server{
		state:        NewLobbyState(),
		clients:      make(map[string]*ClientHandle),
		statusChan:   make(chan ClientStatus, 256),
		registerCh:   make(chan *ClientHandle, 256),
		unregisterCh: make(chan string, 256),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Create initial empty snapshot
	s.snapshot.Store(&LobbySnapshot{Sessions: []SessionStatus{}})

	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.LobbyTickTime)
	defer ticker.Stop()

	for {
		s.processRegistrations()
		s.collectStatus()
		s.createSnapshot()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Count() == 0 {
				return
			}
		}
	}
}

// Count returns the number of registered sessions.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
// The handle is visible to Shutdown immediately and to snapshots from the next server tick.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	s.seq++
	handle := &ClientHandle{
		ID:       uuid.NewString(),
		Username: username,
		Joined:   time.Now(),
		Status:   MatchStatus{Phase: "idle"},
		EventsCh: make(chan ClientEvent, config.ClientEventBuf),
		seq:      s.seq,
	}
	s.clients[handle.ID] = handle
	s.mu.Unlock()

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client. Its events channel is closed.
func (s *Server) UnregisterClient(clientID string) {
	s.mu.Lock()
	if handle, ok := s.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	s.mu.Unlock()

	s.unregisterCh <- clientID
}

// SendStatus queues a match status report. Non-blocking: drops the report if the queue is full.
func (s *Server) SendStatus(clientID string, status MatchStatus) {
	select {
	case s.statusChan <- ClientStatus{ClientID: clientID, Status: status}:
	default:
	}
}

// GetSnapshot returns the latest lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// processRegistrations applies pending registrations/unregistrations to the lobby state.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.state.Add(handle)
		case clientID := <-s.unregisterCh:
			s.state.Remove(clientID)
		default:
			return
		}
	}
}

// collectStatus gathers all pending status reports, keeping the latest per client.
func (s *Server) collectStatus() {
	for {
		select {
		case cs := <-s.statusChan:
			s.state.Update(cs.ClientID, cs.Status)
		default:
			return
		}
	}
}

// createSnapshot publishes a new snapshot when the lobby changed since the last one.
func (s *Server) createSnapshot() {
	if !s.state.dirty {
		return
	}
	snap := s.state.Snapshot(time.Now())
	s.snapshot.Store(snap)
	if s.onChange != nil {
		s.onChange(snap)
	}
}
