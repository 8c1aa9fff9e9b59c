// Package input turns terminal key presses into a held-key set and discrete
// control commands.
package input

import (
	"io"
	"time"
)

// DefaultKeyHold is how long a directional key stays held after its last
// press. Terminals only send auto-repeated presses, never releases, so it
// must be longer than the gap between auto-repeats.
const DefaultKeyHold = 120 * time.Millisecond

// Key identifies one of the four directional inputs.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	numKeys
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	return "unknown"
}

// Command is a discrete control action.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdReset
	CmdQuit
)

// Snapshot is the set of directional keys held at one simulation tick.
type Snapshot struct {
	Up, Down, Left, Right bool
}

// Held reports whether k is in the snapshot.
func (s Snapshot) Held(k Key) bool {
	switch k {
	case KeyUp:
		return s.Up
	case KeyDown:
		return s.Down
	case KeyLeft:
		return s.Left
	case KeyRight:
		return s.Right
	}
	return false
}

// KeySet tracks currently held directional keys.
// Press is idempotent; a held key is released by Release or by Expire.
type KeySet struct {
	held [numKeys]bool
	seen [numKeys]time.Time
}

// Press marks k as held and records when it was last seen.
func (s *KeySet) Press(k Key, now time.Time) {
	if k < 0 || k >= numKeys {
		return
	}
	s.held[k] = true
	s.seen[k] = now
}

// Release removes k from the set.
func (s *KeySet) Release(k Key) {
	if k < 0 || k >= numKeys {
		return
	}
	s.held[k] = false
}

// Held reports whether k is currently held.
func (s *KeySet) Held(k Key) bool {
	return k >= 0 && k < numKeys && s.held[k]
}

// Expire releases every key that has not been pressed within hold of now.
func (s *KeySet) Expire(now time.Time, hold time.Duration) {
	for k := range s.held {
		if s.held[k] && now.Sub(s.seen[k]) >= hold {
			s.held[k] = false
		}
	}
}

// Clear releases all keys.
func (s *KeySet) Clear() {
	s.held = [numKeys]bool{}
}

// Snapshot returns the current held keys.
func (s *KeySet) Snapshot() Snapshot {
	return Snapshot{
		Up:    s.held[KeyUp],
		Down:  s.held[KeyDown],
		Left:  s.held[KeyLeft],
		Right: s.held[KeyRight],
	}
}

// Frame is the result of draining input once per rendered frame.
type Frame struct {
	Commands []Command
	Active   bool // Any key arrived since the previous frame
	Closed   bool // The input source has ended
}

// Has reports whether cmd was issued this frame.
func (f Frame) Has(cmd Command) bool {
	for _, c := range f.Commands {
		if c == cmd {
			return true
		}
	}
	return false
}

// Source is polled once per frame by the client loop and sampled once per
// simulation tick.
type Source interface {
	Poll(now time.Time) Frame
	Snapshot() Snapshot
}

// KeyForByte maps a single byte to a directional key (WASD).
func KeyForByte(b byte) (Key, bool) {
	switch b {
	case 'w', 'W':
		return KeyUp, true
	case 's', 'S':
		return KeyDown, true
	case 'a', 'A':
		return KeyLeft, true
	case 'd', 'D':
		return KeyRight, true
	}
	return 0, false
}

// CommandForByte maps a single byte to a control command.
func CommandForByte(b byte) Command {
	switch b {
	case ' ', '\n', '\r':
		return CmdStart
	case 'p', 'P':
		return CmdPause
	case 'r', 'R':
		return CmdReset
	case 'q', 'Q', '\x03':
		return CmdQuit
	}
	return CmdNone
}

// Stream delivers input bytes via a channel and keeps the held-key set.
type Stream struct {
	ch     chan byte
	keys   KeySet
	hold   time.Duration
	buf    []byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// hold <= 0 uses DefaultKeyHold.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: hold,
	}
	go func() {
		var b [64]byte
		for {
			n, err := r.Read(b[:])
			for i := 0; i < n; i++ {
				s.ch <- b[i]
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking), applies them to the
// held-key set and returns the commands seen. Keys not repeated within
// the hold duration are released.
func (s *Stream) Poll(now time.Time) Frame {
	s.buf = s.buf[:0]

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	s.keys.Expire(now, s.hold)
	f := s.parse(s.buf, now)
	f.Closed = s.closed
	return f
}

// parse applies raw bytes to the key set and collects commands.
func (s *Stream) parse(buf []byte, now time.Time) Frame {
	var f Frame
	f.Active = len(buf) > 0

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.keys.Press(KeyUp, now)
			case 'B':
				s.keys.Press(KeyDown, now)
			case 'C':
				s.keys.Press(KeyRight, now)
			case 'D':
				s.keys.Press(KeyLeft, now)
			}
			i += 2
			continue
		}

		if k, ok := KeyForByte(b); ok {
			s.keys.Press(k, now)
			continue
		}
		if cmd := CommandForByte(b); cmd != CmdNone {
			f.Commands = append(f.Commands, cmd)
		}
	}
	return f
}

// Snapshot returns the directional keys held right now.
func (s *Stream) Snapshot() Snapshot {
	return s.keys.Snapshot()
}

var _ Source = (*Stream)(nil)
