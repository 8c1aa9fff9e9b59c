package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/object"
)

// recordingSurface logs every call as a string.
type recordingSurface struct {
	calls []string
	fill  draw.Color
	texts map[string]draw.Color
}

func newRecorder() *recordingSurface {
	return &recordingSurface{texts: map[string]draw.Color{}}
}

func (r *recordingSurface) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingSurface) SetFillColor(c draw.Color) {
	r.fill = c
	r.log("fill %s", c.Hex())
}
func (r *recordingSurface) SetStrokeColor(c draw.Color)     { r.log("stroke %s", c.Hex()) }
func (r *recordingSurface) SetLineWidth(w float64)          { r.log("width %v", w) }
func (r *recordingSurface) SetLineDash(p ...float64)        { r.log("dash %v", p) }
func (r *recordingSurface) SetFont(f draw.Font)             { r.log("font %v", f.Size) }
func (r *recordingSurface) SetTextAlign(a draw.TextAlign)   { r.log("align %d", a) }
func (r *recordingSurface) FillRect(x, y, w, h float64)     { r.log("fillRect %v %v %v %v", x, y, w, h) }
func (r *recordingSurface) StrokeRect(x, y, w, h float64)   { r.log("strokeRect %v %v %v %v", x, y, w, h) }
func (r *recordingSurface) Line(x1, y1, x2, y2 float64)     { r.log("line %v %v %v %v", x1, y1, x2, y2) }
func (r *recordingSurface) Arc(cx, cy, rad, s, e float64)   { r.log("arc %v %v %v", cx, cy, rad) }
func (r *recordingSurface) FillText(t string, x, y float64) {
	r.texts[t] = r.fill
	r.log("text %q", t)
}

func (r *recordingSurface) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestCourt(t *testing.T) {
	r := newRecorder()
	Court(r)
	want := []string{
		"fill #2E7D32",
		"fillRect 0 0 800 500",
		"stroke #FFFFFF",
		"width 3",
		"strokeRect 5 5 790 490",
		"dash [10 5]",
		"width 2",
		"line 400 5 400 495",
		"arc 400 250 30",
		"dash []",
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls %q, want %q", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, r.calls[i], want[i])
		}
	}
}

func TestFrameIdleShowsInstructions(t *testing.T) {
	g := match.New(match.WithRand(constRand(0.5)))
	r := newRecorder()
	Frame(r, g)

	for _, line := range Instructions {
		if _, ok := r.texts[line]; !ok {
			t.Errorf("instruction %q not drawn", line)
		}
	}
	if r.calls[0] != "fill #2E7D32" {
		t.Errorf("first call %q, want court fill", r.calls[0])
	}
	// No charge yet: only the two paddles and the ball are outlined besides the court.
	if got := r.count("strokeRect"); got != 4 {
		t.Errorf("strokeRect calls = %d, want 4", got)
	}
}

func TestFramePaused(t *testing.T) {
	g := match.New(match.WithRand(constRand(0.5)))
	g.Start()
	g.TogglePause()
	r := newRecorder()
	Frame(r, g)
	if _, ok := r.texts[PausedText]; !ok {
		t.Fatal("PAUSED not drawn")
	}
	if _, ok := r.texts[Instructions[0]]; ok {
		t.Fatal("instructions drawn while paused")
	}
}

func TestFrameWinnerBanner(t *testing.T) {
	g := match.New(match.WithRand(constRand(0.5)))
	g.Start()
	for i := 0; i < 100000 && g.Phase() != match.PhaseEnded; i++ {
		// Flat serves come at the player, whose paddle sits at the
		// bottom bound and misses every one.
		g.Tick(input.Snapshot{Down: true})
	}
	if g.Phase() != match.PhaseEnded {
		t.Fatal("match never ended")
	}
	w, _ := g.Winner()
	r := newRecorder()
	Frame(r, g)

	want, col := PlayerWinsText, draw.Color(0xFFFF00)
	if w == object.SideCPU {
		want, col = CPUWinsText, draw.Red
	}
	if got, ok := r.texts[want]; !ok || got != col {
		t.Fatalf("banner %q color %s, drawn=%v", want, got.Hex(), ok)
	}
}

func TestFrameDrawsEffectsWithoutMutating(t *testing.T) {
	g := match.New(match.WithRand(constRand(0.5)))
	g.Start()
	b := g.Ball()
	b.X, b.Y, b.DX, b.DY = 42, 250, -6, 0
	g.Tick(input.Snapshot{Right: true}) // Player rushes into the ball: smash

	if g.Particles().Len() == 0 || g.Banner() == nil {
		t.Fatal("setup did not produce a smash")
	}
	lives := make([]int, 0, g.Particles().Len())
	for _, p := range g.Particles().All() {
		lives = append(lives, p.Life)
	}
	x, y, ticks := b.X, b.Y, g.Banner().Ticks

	r := newRecorder()
	Frame(r, g)
	Frame(r, g)

	for i, p := range g.Particles().All() {
		if p.Life != lives[i] {
			t.Fatalf("particle %d life changed by rendering", i)
		}
	}
	if b.X != x || b.Y != y || g.Banner().Ticks != ticks {
		t.Fatal("rendering changed match state")
	}
	if _, ok := r.texts[match.SmashText]; !ok {
		t.Fatal("smash banner not drawn")
	}
	if r.texts[match.SmashText] != object.SidePlayer.Accent() {
		t.Fatalf("banner color %s", r.texts[match.SmashText].Hex())
	}
}
