// Package logger builds the zerolog logger used across the widget. The TUI
// owns the terminal, so output goes to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string
	File    string
}

// New returns a logger and a close func for the underlying file. A disabled
// config, or one without a file, yields a no-op logger.
func New(cfg Config) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }
	path := strings.TrimSpace(cfg.File)
	if !cfg.Enabled || path == "" {
		return zerolog.Nop(), noop, nil
	}

	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("logger: open log file: %w", err)
	}
	return NewWriter(f, cfg.Level), f.Close, nil
}

// NewWriter builds a logger on an arbitrary writer.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		Hook(timestampHook{})
}

// timestampHook stamps entries with nanosecond RFC 3339 times without
// touching zerolog.TimeFieldFormat.
type timestampHook struct{}

func (timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(time.RFC3339Nano))
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
