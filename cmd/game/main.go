package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/smashtennis/internal/config"
	"github.com/tomz197/smashtennis/internal/loop"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/screen"
	"github.com/tomz197/smashtennis/internal/sound"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	settings, err := config.Load(config.GetEnv("TENNIS_CONFIG", "tennis.toml"))
	if err != nil {
		return err
	}
	// The terminal belongs to the game while it runs; log only around it.
	logger, err := config.NewLogger(os.Stderr, settings.Log, "game")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		FrameTime: settings.Game.FrameTime(),
		KeyHold:   settings.Game.KeyHold.Duration,
	}

	if settings.Game.Sound {
		player, err := sound.Init()
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Listeners = []match.Listener{player}
		}
	}

	logger.Debug("starting local match", "backend", settings.Game.Backend, "fps", settings.Game.RenderFPS)

	switch settings.Game.Backend {
	case config.BackendTcell:
		err = runTcell(ctx, settings, opts)
	default:
		err = runANSI(ctx, opts)
	}
	if err != nil {
		return err
	}
	logger.Debug("local match ended")
	return nil
}

// runANSI plays on stdin/stdout in raw mode.
func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return loop.RunANSI(ctx, os.Stdin, os.Stdout, opts)
}

// runTcell plays through tcell, which handles raw mode and key decoding.
func runTcell(ctx context.Context, settings config.Settings, opts loop.Options) error {
	scr, err := screen.New(settings.Game.KeyHold.Duration)
	if err != nil {
		return fmt.Errorf("open tcell screen: %w", err)
	}
	return loop.Run(ctx, scr, scr, opts)
}
