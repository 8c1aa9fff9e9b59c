package client

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/render"
)

// HUD colors.
const (
	hudTextColor     draw.Color = 0xFFFFFF
	hudSmashColor    draw.Color = 0xFFD700
	hudDisabledColor draw.Color = 0x777777
	hudNoticeColor   draw.Color = 0xFF4444
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On state, inactivity or layout transitions, do a full terminal clear
	// so residue from the previous screen does not persist.
	full := c.state.GameState != c.state.prevGameState ||
		c.state.isInactive != c.state.wasInactive ||
		c.layout != c.state.prevLayout
	c.state.prevGameState = c.state.GameState
	c.state.wasInactive = c.state.isInactive
	c.state.prevLayout = c.layout

	c.canvas.Clear()

	if c.layout.TooSmall {
		c.drawTooSmallScreen()
		return c.presenter.Present(c.canvas, full)
	}

	render.Frame(c.canvas, c.game)
	c.drawHUD()

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	}

	return c.presenter.Present(c.canvas, full)
}

// drawHUD draws the score and smash lines above the court and the control
// row below it.
func (c *Client) drawHUD() {
	c.canvas.TextCentered(0, c.board.ScoreLine, hudTextColor)
	c.canvas.TextCentered(1, c.board.SmashLine, hudSmashColor)

	row := c.canvas.TerminalHeight() - 1
	ctl := c.board.Controls
	items := []struct {
		key string
		ctl match.Control
	}{
		{"SPC", ctl.Start},
		{"P", ctl.Pause},
		{"R", ctl.Reset},
		{"Q", match.Control{Label: "Quit", Enabled: true}},
	}

	col := 1
	for _, it := range items {
		fg := hudTextColor
		if !it.ctl.Enabled {
			fg = hudDisabledColor
		}
		text := it.key + " " + it.ctl.Label
		c.canvas.Text(col, row, text, fg)
		col += utf8.RuneCountInString(text) + 2
	}

	if snap := c.server.GetSnapshot(); snap != nil {
		online := fmt.Sprintf("Online: %d", snap.Players)
		right := c.canvas.TerminalWidth() - len(online) - 1
		if right > col {
			c.canvas.Text(right, row, online, hudDisabledColor)
		}
	}
}

// drawLines writes lines centered around the middle of the render area.
func (c *Client) drawLines(lines []string, colors []draw.Color) {
	top := c.canvas.TerminalHeight()/2 - len(lines)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		c.canvas.TextCentered(top+i, line, colors[i%len(colors)])
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.drawLines([]string{
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("Disconnecting in %d seconds.", max(left, 0)),
		"",
		"Press any key to continue",
	}, []draw.Color{hudNoticeColor, hudTextColor, hudTextColor, hudTextColor, hudSmashColor})
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	remaining := int(c.state.shutdownTimer) + 1
	c.drawLines([]string{
		"SERVER SHUTTING DOWN",
		"",
		"Please reconnect in a moment.",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	}, []draw.Color{hudNoticeColor, hudTextColor, hudTextColor, hudTextColor, hudTextColor, hudSmashColor})
}

// drawTooSmallScreen asks for a bigger terminal.
func (c *Client) drawTooSmallScreen() {
	c.drawLines([]string{
		"Terminal too small",
		fmt.Sprintf("Need %dx%d", config.MinTermWidth, config.MinTermHeight),
	}, []draw.Color{hudNoticeColor, hudTextColor})
}
