package screen

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
)

func newSim(t *testing.T) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(80, 24)
	return sim, Wrap(sim, time.Second)
}

// pollUntil polls until cond holds for the accumulated frames.
func pollUntil(t *testing.T, s *Screen, cond func(input.Frame) bool) input.Frame {
	t.Helper()
	var acc input.Frame
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		f := s.Poll(time.Now())
		acc.Commands = append(acc.Commands, f.Commands...)
		acc.Active = acc.Active || f.Active
		acc.Closed = acc.Closed || f.Closed
		if cond(acc) {
			return acc
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met, got %+v", acc)
	return acc
}

func TestArrowKeysHold(t *testing.T) {
	sim, s := newSim(t)
	defer s.End()

	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	pollUntil(t, s, func(input.Frame) bool {
		snap := s.Snapshot()
		return snap.Up && snap.Right
	})
	if s.Snapshot().Down || s.Snapshot().Left {
		t.Fatalf("unexpected keys held: %+v", s.Snapshot())
	}
}

func TestKeysExpire(t *testing.T) {
	sim, s := newSim(t)
	defer s.End()

	sim.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	pollUntil(t, s, func(input.Frame) bool { return s.Snapshot().Left })

	s.Poll(time.Now().Add(2 * time.Second))
	if s.Snapshot().Left {
		t.Fatal("key still held after the hold window")
	}
}

func TestCommands(t *testing.T) {
	sim, s := newSim(t)
	defer s.End()

	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	f := pollUntil(t, s, func(f input.Frame) bool { return f.Has(input.CmdQuit) })

	for _, c := range []input.Command{input.CmdStart, input.CmdPause, input.CmdReset} {
		if !f.Has(c) {
			t.Errorf("command %v missing from %+v", c, f.Commands)
		}
	}
	if !f.Active {
		t.Error("key events did not mark the frame active")
	}
}

func TestEndClosesInput(t *testing.T) {
	_, s := newSim(t)
	if err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	pollUntil(t, s, func(f input.Frame) bool { return f.Closed })
}

func TestPresent(t *testing.T) {
	sim, s := newSim(t)
	defer s.End()

	c := draw.NewScaledCanvas(20, 5, 100, 50)
	c.SetOffset(3, 2)
	c.Text(0, 0, "HI", draw.White)
	if err := s.Present(c, true); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if ch, _, _, _ := sim.GetContent(3, 2); ch != 'H' {
		t.Errorf("cell (3,2) = %q, want 'H'", ch)
	}
	if ch, _, _, _ := sim.GetContent(4, 2); ch != 'I' {
		t.Errorf("cell (4,2) = %q, want 'I'", ch)
	}
	corners := map[[2]int]rune{{2, 1}: '┌', {23, 1}: '┐', {2, 7}: '└', {23, 7}: '┘'}
	for pos, want := range corners {
		if ch, _, _, _ := sim.GetContent(pos[0], pos[1]); ch != want {
			t.Errorf("border at %v = %q, want %q", pos, ch, want)
		}
	}

	w, h, err := s.Size()
	if err != nil || w != 80 || h != 24 {
		t.Fatalf("Size = %d, %d, %v", w, h, err)
	}
}

func TestStyle(t *testing.T) {
	if Style(draw.NoColor, draw.NoColor) != tcell.StyleDefault {
		t.Fatal("NoColor should keep the default style")
	}
	fg, _, _ := Style(draw.RGB(0x2E, 0x7D, 0x32), draw.NoColor).Decompose()
	if fg != tcell.NewRGBColor(0x2E, 0x7D, 0x32) {
		t.Fatalf("foreground = %v", fg)
	}
}
