package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogSettings{Level: "warn"}, "ssh")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "port", 2222)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "port=2222") || !strings.Contains(out, "ssh") {
		t.Errorf("warn line missing fields: %q", out)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, LogSettings{Level: "loud"}, ""); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("err = %v, want ErrInvalidSetting", err)
	}
}
