package client

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/loop/server"
)

// fakeServer records what a client reports.
type fakeServer struct {
	handle       *server.ClientHandle
	statuses     []server.MatchStatus
	unregistered bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{handle: &server.ClientHandle{
		ID:       "session-1",
		EventsCh: make(chan server.ClientEvent, 4),
	}}
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle.Username = username
	return f.handle
}

func (f *fakeServer) UnregisterClient(string) { f.unregistered = true }

func (f *fakeServer) SendStatus(_ string, st server.MatchStatus) {
	f.statuses = append(f.statuses, st)
}

func (f *fakeServer) GetSnapshot() *server.LobbySnapshot {
	return &server.LobbySnapshot{Players: 1}
}

// scriptInput replays frames, then reports idle frames.
type scriptInput struct {
	frames []input.Frame
	held   input.Snapshot
}

func (s *scriptInput) Poll(time.Time) input.Frame {
	if len(s.frames) == 0 {
		return input.Frame{}
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f
}

func (s *scriptInput) Snapshot() input.Snapshot { return s.held }

// fakePresenter keeps the text of the last presented frame.
type fakePresenter struct {
	cols, rows int
	err        error
	begun      bool
	ended      bool
	frames     int
	clears     int
	last       []string
}

func (p *fakePresenter) Size() (int, int, error) { return p.cols, p.rows, nil }
func (p *fakePresenter) Begin() error            { p.begun = true; return nil }
func (p *fakePresenter) End() error              { p.ended = true; return nil }

func (p *fakePresenter) Present(c *draw.Canvas, clear bool) error {
	if p.err != nil {
		return p.err
	}
	p.frames++
	if clear {
		p.clears++
	}
	lines := make([][]rune, c.TerminalHeight())
	for i := range lines {
		lines[i] = make([]rune, c.TerminalWidth())
	}
	c.Cells(func(col, row int, ch rune, _, _ draw.Color) {
		lines[row][col] = ch
	})
	p.last = p.last[:0]
	for _, l := range lines {
		p.last = append(p.last, string(l))
	}
	return nil
}

func (p *fakePresenter) contains(s string) bool {
	for _, l := range p.last {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

func cmd(c input.Command) input.Frame {
	return input.Frame{Commands: []input.Command{c}, Active: true}
}

func newTestClient(gs server.GameServer, p Presenter, in input.Source, frame time.Duration) *Client {
	return NewClient(gs, ClientOptions{
		Username:  "tester",
		Presenter: p,
		Input:     in,
		FrameTime: frame,
	})
}

func TestClientPlaysAndQuits(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{cmd(input.CmdStart), {}, {}, {}, cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, 20*time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.begun || !p.ended {
		t.Fatal("presenter not begun and ended")
	}
	if !gs.unregistered {
		t.Fatal("client did not unregister")
	}
	if c.Game().Phase() != match.PhaseRunning {
		t.Fatalf("phase = %v, want running", c.Game().Phase())
	}
	if c.Game().Ticks() == 0 {
		t.Fatal("no simulation ticks ran")
	}
	if p.clears != 1 {
		t.Errorf("clears = %d, want 1 (first frame only)", p.clears)
	}
	if !p.contains("Player: 0 | CPU: 0") || !p.contains("Player Smashes: 0 | CPU Smashes: 0") {
		t.Fatalf("HUD missing from frame:\n%s", strings.Join(p.last, "\n"))
	}
	if !p.contains("SPC Running...") {
		t.Fatal("control row does not show the running start control")
	}
	if len(gs.statuses) == 0 || gs.statuses[len(gs.statuses)-1].Phase != "running" {
		t.Fatalf("statuses = %+v", gs.statuses)
	}
}

func TestClientStatusSentOnChangeOnly(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{{}, {}, {}, cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(gs.statuses) != 1 || gs.statuses[0].Phase != "idle" {
		t.Fatalf("statuses = %+v, want a single idle report", gs.statuses)
	}
}

func TestClientIdleShowsInstructions(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 160, rows: 60}
	in := &scriptInput{frames: []input.Frame{{}, cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.contains("ACTION TENNIS vs CPU") {
		t.Fatalf("instructions missing:\n%s", strings.Join(p.last, "\n"))
	}
}

func TestClientPauseStopsTicks(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{cmd(input.CmdStart), cmd(input.CmdPause), {}, {}, {}, cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, 20*time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Game().Ticks() != 0 {
		t.Fatalf("ticks = %d while paused", c.Game().Ticks())
	}
	if !p.contains("PAUSED") || !p.contains("P Resume") {
		t.Fatal("paused overlay or resume label missing")
	}
}

func TestClientInputClosedEndsRun(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{{Closed: true}}}
	c := newTestClient(gs, p, in, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after input closed")
	}
}

func TestClientContextCancel(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	c := newTestClient(gs, p, &scriptInput{}, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.frames != 0 {
		t.Fatalf("frames = %d after cancelled context", p.frames)
	}
	if !gs.unregistered {
		t.Fatal("client did not unregister")
	}
}

func TestClientShutdownScreen(t *testing.T) {
	gs := newFakeServer()
	gs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{{}, cmd(input.CmdStart), cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.contains("SERVER SHUTTING DOWN") {
		t.Fatalf("shutdown screen missing:\n%s", strings.Join(p.last, "\n"))
	}
	if c.Game().Phase() != match.PhaseIdle {
		t.Fatal("commands still applied during shutdown")
	}
}

func TestClientInactivityWarning(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	in := &scriptInput{frames: []input.Frame{{}, {Commands: []input.Command{input.CmdQuit}}}}
	c := newTestClient(gs, p, in, time.Millisecond)
	c.lastInput = time.Now().Add(-100 * time.Second)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.contains("INACTIVITY WARNING") {
		t.Fatalf("inactivity warning missing:\n%s", strings.Join(p.last, "\n"))
	}
}

func TestClientInactiveDisconnect(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 80, rows: 24}
	c := newTestClient(gs, p, &scriptInput{}, time.Millisecond)
	c.lastInput = time.Now().Add(-200 * time.Second)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.frames != 1 {
		t.Fatalf("frames = %d, want 1 before disconnect", p.frames)
	}
}

func TestClientClosedEventsEndRun(t *testing.T) {
	gs := newFakeServer()
	close(gs.handle.EventsCh)
	p := &fakePresenter{cols: 80, rows: 24}
	c := newTestClient(gs, p, &scriptInput{}, time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.frames != 1 {
		t.Fatalf("frames = %d, want 1", p.frames)
	}
}

func TestClientTooSmall(t *testing.T) {
	gs := newFakeServer()
	p := &fakePresenter{cols: 30, rows: 10}
	in := &scriptInput{frames: []input.Frame{cmd(input.CmdQuit)}}
	c := newTestClient(gs, p, in, time.Millisecond)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !p.contains("Terminal too small") {
		t.Fatalf("too-small notice missing:\n%s", strings.Join(p.last, "\n"))
	}
}

func TestClientPresentErrorIsReturned(t *testing.T) {
	gs := newFakeServer()
	errBroken := errors.New("broken pipe")
	p := &fakePresenter{cols: 80, rows: 24, err: errBroken}
	c := newTestClient(gs, p, &scriptInput{}, time.Millisecond)

	err := c.Run(context.Background())
	if !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want wrapped %v", err, errBroken)
	}
	if !gs.unregistered {
		t.Fatal("client did not unregister after error")
	}
}
