package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so it can be written as "120ms" in TOML files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalidSetting, text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// SSHSettings configures the SSH game server.
type SSHSettings struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
}

// HTTPSettings configures the side listener serving /metrics and /live.
// An empty Addr disables it.
type HTTPSettings struct {
	Addr string `toml:"addr"`
}

// WebSettings configures the landing page server.
type WebSettings struct {
	Host           string `toml:"host"`
	Port           string `toml:"port"`
	SSHDisplayHost string `toml:"ssh_display_host"`
}

// GameSettings configures the terminal client. Game rules are not configurable.
type GameSettings struct {
	RenderFPS int      `toml:"render_fps"`
	KeyHold   Duration `toml:"key_hold"`
	Backend   string   `toml:"backend"` // "ansi" or "tcell"
	Sound     bool     `toml:"sound"`
}

// LogSettings configures the root logger.
type LogSettings struct {
	Level string `toml:"level"`
}

// Settings is the full runtime configuration shared by all binaries.
type Settings struct {
	SSH  SSHSettings  `toml:"ssh"`
	HTTP HTTPSettings `toml:"http"`
	Web  WebSettings  `toml:"web"`
	Game GameSettings `toml:"game"`
	Log  LogSettings  `toml:"log"`
}

// Backends accepted by GameSettings.Backend.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		SSH: SSHSettings{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
		},
		Web: WebSettings{
			Host:           "0.0.0.0",
			Port:           "8080",
			SSHDisplayHost: "your-server.com",
		},
		Game: GameSettings{
			RenderFPS: 60,
			KeyHold:   Duration{120 * time.Millisecond},
			Backend:   BackendANSI,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load builds settings from defaults, the optional TOML file at path and
// environment overrides, in that order. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// applyEnv overrides settings with environment variables.
func (s *Settings) applyEnv() error {
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", s.SSH.HostKeyPath)
	s.HTTP.Addr = GetEnv("HTTP_ADDR", s.HTTP.Addr)
	s.Web.Host = GetEnv("WEB_HOST", s.Web.Host)
	s.Web.Port = GetEnv("WEB_PORT", s.Web.Port)
	s.Web.SSHDisplayHost = GetEnv("SSH_DISPLAY_HOST", s.Web.SSHDisplayHost)
	s.Game.Backend = GetEnv("TENNIS_BACKEND", s.Game.Backend)
	s.Log.Level = GetEnv("LOG_LEVEL", s.Log.Level)

	var err error
	if s.Game.RenderFPS, err = GetEnvInt("TENNIS_FPS", s.Game.RenderFPS); err != nil {
		return err
	}
	if s.Game.KeyHold.Duration, err = GetEnvDuration("TENNIS_KEY_HOLD", s.Game.KeyHold.Duration); err != nil {
		return err
	}
	if s.Game.Sound, err = GetEnvBool("TENNIS_SOUND", s.Game.Sound); err != nil {
		return err
	}
	return nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Game.RenderFPS < 1 || s.Game.RenderFPS > 240 {
		return fmt.Errorf("%w: game.render_fps=%d (want 1..240)", ErrInvalidSetting, s.Game.RenderFPS)
	}
	if s.Game.KeyHold.Duration <= 0 {
		return fmt.Errorf("%w: game.key_hold=%s (want > 0)", ErrInvalidSetting, s.Game.KeyHold.Duration)
	}
	switch s.Game.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w: game.backend=%q (want %q or %q)", ErrInvalidSetting, s.Game.Backend, BackendANSI, BackendTcell)
	}
	return nil
}

// FrameTime returns the target duration of one rendered frame.
func (g GameSettings) FrameTime() time.Duration {
	return time.Second / time.Duration(g.RenderFPS)
}
