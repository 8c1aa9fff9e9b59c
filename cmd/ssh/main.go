package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/smashtennis/internal/config"
	"github.com/tomz197/smashtennis/internal/draw"
	"github.com/tomz197/smashtennis/internal/input"
	"github.com/tomz197/smashtennis/internal/live"
	"github.com/tomz197/smashtennis/internal/loop/client"
	gameconfig "github.com/tomz197/smashtennis/internal/loop/config"
	"github.com/tomz197/smashtennis/internal/loop/match"
	"github.com/tomz197/smashtennis/internal/loop/server"
	"github.com/tomz197/smashtennis/internal/metrics"
)

// app holds what every SSH session shares.
type app struct {
	settings config.Settings
	logger   *log.Logger
	server   *server.Server
	metrics  *metrics.Metrics
	hub      *live.Hub
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := config.Load(config.GetEnv("TENNIS_CONFIG", "tennis.toml"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(os.Stderr, settings.Log, "ssh")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", settings.SSH.Host, "port", settings.SSH.Port,
		"hostKeyPath", settings.SSH.HostKeyPath, "workingDir", workingDir)

	a := &app{
		settings: settings,
		logger:   logger,
		metrics:  metrics.New(),
		hub:      live.NewHub(logger.WithPrefix("live")),
	}

	// Shared session registry; lobby changes go to the live feed
	serverCtx, cancelServer := context.WithCancel(context.Background())
	a.server = server.NewServer(server.WithSnapshotHook(a.hub.PublishLobby))
	go a.server.Run(serverCtx)
	logger.Info("game server started")

	httpSrv := a.startHTTP()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSH.Host, settings.SSH.Port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "host", settings.SSH.Host, "port", settings.SSH.Port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players about shutdown", "players", a.server.Count())
	a.server.Shutdown(gameconfig.ShutdownWaitTime)
	cancelServer()
	logger.Info("game server stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if httpSrv != nil {
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warn("http shutdown", "err", err)
		}
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// startHTTP serves /metrics and /live when an address is configured.
// A listener that fails to start is logged and the game keeps running.
func (a *app) startHTTP() *http.Server {
	if a.settings.HTTP.Addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	// Read-only feed, open to pages served from any origin
	mux.Handle("/live", a.hub.Handler([]string{"*"}))

	srv := &http.Server{Addr: a.settings.HTTP.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.logger.Info("starting HTTP listener", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("http listener stopped", "err", err)
		}
	}()
	return srv
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		a.metrics.SessionStarted()
		defer a.metrics.SessionEnded()

		c := client.NewClient(a.server, client.ClientOptions{
			Username:  sess.User(),
			Presenter: client.NewANSIPresenter(sess, sizeTracker.getSize),
			Input:     input.StartStream(sess, a.settings.Game.KeyHold.Duration),
			Logger:    logger,
			FrameTime: a.settings.Game.FrameTime(),
			Listeners: []match.Listener{a.metrics.Listener()},
		})
		c.Game().Subscribe(a.hub.Listener(c.ID()))

		if err := c.Run(sess.Context()); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
