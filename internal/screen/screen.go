// Package screen is the tcell terminal backend: it presents canvases
// through a tcell.Screen and turns tcell key events into game input.
package screen

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/client"
)

// Screen wraps a tcell.Screen. It is both the presenter and the input
// source of a client.
type Screen struct {
	scr    tcell.Screen
	events chan tcell.Event
	keys   input.KeySet
	hold   time.Duration
	closed bool
}

var (
	_ client.Presenter = (*Screen)(nil)
	_ input.Source     = (*Screen)(nil)
)

// New opens the terminal with tcell. hold is how long a key counts as
// held after its last press; <= 0 uses input.DefaultKeyHold.
func New(hold time.Duration) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	return Wrap(scr, hold), nil
}

// Wrap uses an initialized tcell screen, e.g. a simulation screen.
func Wrap(scr tcell.Screen, hold time.Duration) *Screen {
	if hold <= 0 {
		hold = input.DefaultKeyHold
	}
	s := &Screen{
		scr:    scr,
		events: make(chan tcell.Event, 100),
		hold:   hold,
	}
	go s.pump()
	return s
}

// pump forwards tcell events until the screen is finalized.
func (s *Screen) pump() {
	for {
		ev := s.scr.PollEvent()
		if ev == nil {
			close(s.events)
			return
		}
		s.events <- ev
	}
}

// Poll drains pending tcell events (non-blocking).
func (s *Screen) Poll(now time.Time) input.Frame {
	var f input.Frame

drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				f.Active = true
				if cmd := s.handleKey(ev, now); cmd != input.CmdNone {
					f.Commands = append(f.Commands, cmd)
				}
			case *tcell.EventResize:
				s.scr.Sync()
			}
		default:
			break drain
		}
	}

	s.keys.Expire(now, s.hold)
	f.Closed = s.closed
	return f
}

// handleKey presses directional keys and returns the command of any other key.
func (s *Screen) handleKey(ev *tcell.EventKey, now time.Time) input.Command {
	switch ev.Key() {
	case tcell.KeyUp:
		s.keys.Press(input.KeyUp, now)
	case tcell.KeyDown:
		s.keys.Press(input.KeyDown, now)
	case tcell.KeyLeft:
		s.keys.Press(input.KeyLeft, now)
	case tcell.KeyRight:
		s.keys.Press(input.KeyRight, now)
	case tcell.KeyEnter:
		return input.CmdStart
	case tcell.KeyCtrlC:
		return input.CmdQuit
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0x7f {
			return input.CmdNone
		}
		if k, ok := input.KeyForByte(byte(r)); ok {
			s.keys.Press(k, now)
			return input.CmdNone
		}
		return input.CommandForByte(byte(r))
	}
	return input.CmdNone
}

// Snapshot returns the directional keys held right now.
func (s *Screen) Snapshot() input.Snapshot {
	return s.keys.Snapshot()
}

func (s *Screen) Size() (int, int, error) {
	w, h := s.scr.Size()
	return w, h, nil
}

func (s *Screen) Begin() error {
	s.scr.HideCursor()
	s.scr.Clear()
	return nil
}

// Present copies the canvas cells into the tcell buffer and shows it.
func (s *Screen) Present(canvas *draw.Canvas, clear bool) error {
	if clear {
		s.scr.Clear()
	}
	offCol, offRow := canvas.OffsetCol(), canvas.OffsetRow()
	canvas.Cells(func(col, row int, ch rune, fg, bg draw.Color) {
		s.scr.SetContent(offCol+col, offRow+row, ch, nil, Style(fg, bg))
	})
	s.drawBorder(canvas)
	s.scr.Show()
	return nil
}

// End restores the terminal. The input source reports Closed afterwards.
func (s *Screen) End() error {
	s.scr.Fini()
	return nil
}

// drawBorder boxes the render area when it is centered in a larger terminal.
func (s *Screen) drawBorder(canvas *draw.Canvas) {
	offCol, offRow := canvas.OffsetCol(), canvas.OffsetRow()
	w, h := canvas.TerminalWidth(), canvas.TerminalHeight()
	hasH, hasV := offCol >= 1, offRow >= 1

	left, right := offCol-1, offCol+w
	top, bottom := offRow-1, offRow+h
	st := tcell.StyleDefault

	if hasV {
		for col := offCol; col < offCol+w; col++ {
			s.scr.SetContent(col, top, '─', nil, st)
			s.scr.SetContent(col, bottom, '─', nil, st)
		}
	}
	if hasH {
		for row := offRow; row < offRow+h; row++ {
			s.scr.SetContent(left, row, '│', nil, st)
			s.scr.SetContent(right, row, '│', nil, st)
		}
	}
	if hasH && hasV {
		s.scr.SetContent(left, top, '┌', nil, st)
		s.scr.SetContent(right, top, '┐', nil, st)
		s.scr.SetContent(left, bottom, '└', nil, st)
		s.scr.SetContent(right, bottom, '┘', nil, st)
	}
}

// Style converts canvas colors to a tcell style. NoColor keeps the
// terminal default.
func Style(fg, bg draw.Color) tcell.Style {
	st := tcell.StyleDefault
	if fg != draw.NoColor {
		st = st.Foreground(tcellColor(fg))
	}
	if bg != draw.NoColor {
		st = st.Background(tcellColor(bg))
	}
	return st
}

func tcellColor(c draw.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
