// Package loop runs a single local match: a private session registry plus
// one client driving the terminal.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/loop/client"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/loop/server"
)

// localUser is the username of the local player.
const localUser = "local"

// Options configures a local run.
type Options struct {
	FrameTime time.Duration
	KeyHold   time.Duration     // ANSI input only
	Size      draw.TermSizeFunc // ANSI output only; nil means os.Stdout
	Logger    *log.Logger
	Listeners []match.Listener
}

// Run plays one match on the given presenter and input source until the
// player quits, the input closes or ctx is cancelled.
func Run(ctx context.Context, p client.Presenter, in input.Source, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gs := server.NewServer()
	go gs.Run(ctx)

	c := client.NewClient(gs, client.ClientOptions{
		Username:  localUser,
		Presenter: p,
		Input:     in,
		Logger:    opts.Logger,
		FrameTime: opts.FrameTime,
		Listeners: opts.Listeners,
	})
	return c.Run(ctx)
}

// RunANSI plays on a raw byte-stream terminal: keys are read from r and
// frames are written to w as ANSI sequences.
func RunANSI(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return Run(ctx, client.NewANSIPresenter(w, opts.Size), input.StartStream(r, opts.KeyHold), opts)
}
