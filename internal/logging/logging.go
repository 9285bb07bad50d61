// Package logging configures the shared zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger initialization.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// Output overrides the destination (default: stderr).
	Output io.Writer

	// EnableCaller adds caller information to log events.
	EnableCaller bool
}

var (
	mu   sync.RWMutex
	root = zerolog.New(consoleWriter(os.Stderr)).Level(zerolog.InfoLevel).With().Timestamp().Logger()
)

// Init configures the process-wide root logger. Safe to call more than once;
// the last call wins.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != "json" {
		out = consoleWriter(out)
	}

	level := parseLevel(cfg.Level)
	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	mu.Lock()
	root = ctx.Logger()
	mu.Unlock()
}

// Component returns a logger tagged with a component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func consoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
}
