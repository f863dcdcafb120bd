// Package logging builds the diagnostics logger. The terminal belongs to the
// countdown display, so log lines go to a rotating file instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Path  string
	Level string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB  int
	MaxBackups int
}

// New returns a logger writing JSON lines to a lumberjack-rotated file, and
// the writer so the caller can close it on exit.
func New(opts Options) (zerolog.Logger, io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	}

	return NewWithWriter(w, opts.Level), w, nil
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "pomo").
		Logger()
}

// ParseLevel maps a config string to a zerolog level; unknown values mean info.
func ParseLevel(value string) zerolog.Level {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
