// Package logging sets up the structured logger. The TUI owns the terminal,
// so interactive runs log to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Format is the output format of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds the logging configuration.
type Config struct {
	Level  slog.Level
	Format Format
	// Output is "file", "stderr" or "discard".
	Output string
	// FilePath is used when Output is "file". Empty means DefaultPath.
	FilePath  string
	Component string
}

// DefaultConfig logs info and above as text to the default file.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Format:    FormatText,
		Output:    "file",
		Component: "rebinder",
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a level.
// Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat maps "json" to FormatJSON and anything else to FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}

// DefaultPath returns the log file under the XDG state directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("rebinder", "rebinder.log"))
}

// Logger is a slog.Logger with the file it writes to.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a logger for cfg.
func New(cfg Config) (*Logger, error) {
	l := &Logger{}

	var w io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		w = os.Stderr
	case "discard":
		w = io.Discard
	default:
		path := cfg.FilePath
		if path == "" {
			var err error
			if path, err = DefaultPath(); err != nil {
				return nil, fmt.Errorf("log path: %w", err)
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		w = f
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	if cfg.Component != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("app", cfg.Component)})
	}

	l.Logger = slog.New(handler)
	return l, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
