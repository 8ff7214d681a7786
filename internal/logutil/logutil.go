// Package logutil builds a decred/slog backend from the CLI's
// `-debuglevel` flag, the same logger construction every teacher binary
// repeats inline (see e.g. pkg/poker's test logger and cmd/pokersrv's
// logging backend), factored into one reusable subsystem-tagged wrapper.
package logutil

import (
	"fmt"
	"io"

	"github.com/decred/slog"
)

// Config mirrors the teacher's logging.LogConfig: just the level name
// every subsystem logger is created at.
type Config struct {
	DebugLevel string
}

// Backend wraps a single slog.Backend so callers mint one tagged logger
// per subsystem ("SIM", "STRAT", "HAT", ...) instead of each owning a raw
// io.Writer.
type Backend struct {
	backend *slog.Backend
	level   slog.Level
}

// NewBackend validates cfg.DebugLevel and wraps w (normally os.Stderr).
func NewBackend(w io.Writer, cfg Config) (*Backend, error) {
	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		return nil, fmt.Errorf("logutil: unrecognized log level %q", cfg.DebugLevel)
	}
	return &Backend{backend: slog.NewBackend(w), level: level}, nil
}

// Logger returns a tagged logger for subsystem, at the backend's
// configured level.
func (b *Backend) Logger(subsystem string) slog.Logger {
	log := b.backend.Logger(subsystem)
	log.SetLevel(b.level)
	return log
}
