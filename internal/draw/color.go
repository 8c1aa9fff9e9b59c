package draw

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color packed as 0xRRGGBB.
// NoColor marks an unset pixel or the terminal's default color.
type Color uint32

// NoColor is outside the 24-bit range so it never collides with a real color.
const NoColor Color = 0xFF000000

// Named colors used by the court and HUD.
const (
	White     Color = 0xFFFFFF
	Black     Color = 0x000000
	DarkGray  Color = 0x333333
	CourtDark Color = 0x1B5E20
	Yellow    Color = 0xFFFF00
	Red       Color = 0xFF0000
)

// RGB packs 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return NoColor, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return NoColor, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color(v), nil
}

// RGB returns the 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the "#RRGGBB" form.
func (c Color) Hex() string {
	if c == NoColor {
		return "none"
	}
	return fmt.Sprintf("#%06X", uint32(c))
}

// Scale multiplies each channel by f (clamped to [0,1]).
func (c Color) Scale(f float64) Color {
	if c == NoColor {
		return c
	}
	f = clamp01(f)
	r, g, b := c.RGB()
	return RGB(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}

// Mix blends c toward o by t: 0 returns c, 1 returns o.
// Used to approximate alpha over a known background.
func (c Color) Mix(o Color, t float64) Color {
	if c == NoColor {
		return o
	}
	if o == NoColor {
		return c
	}
	t = clamp01(t)
	r1, g1, b1 := c.RGB()
	r2, g2, b2 := o.RGB()
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// appendSGR appends a truecolor foreground or background escape.
// NoColor resets to the terminal default.
func appendSGR(buf []byte, c Color, background bool) []byte {
	if c == NoColor {
		if background {
			return append(buf, "\033[49m"...)
		}
		return append(buf, "\033[39m"...)
	}
	r, g, b := c.RGB()
	if background {
		buf = append(buf, "\033[48;2;"...)
	} else {
		buf = append(buf, "\033[38;2;"...)
	}
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	return append(buf, 'm')
}
