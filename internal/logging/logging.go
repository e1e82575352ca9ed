// Package logging configures the process-wide slog logger. The terminal UI
// owns stdout, so records go to a JSON log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config level name to a slog.Level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Setup opens path for appending and returns a JSON logger writing to it,
// plus a function that closes the file. An empty path uses DefaultLogPath.
// If the file cannot be opened the logger falls back to stderr and the
// error is returned alongside it.
func Setup(level, path string) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if path == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return slog.New(slog.NewJSONHandler(os.Stderr, opts)), func() {}, err
		}
		path = p
	}

	f, err := openLogFile(path)
	if err != nil {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), func() {}, err
	}
	return New(f, level), func() { f.Close() }, nil
}

// New returns a JSON logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// DefaultLogPath returns $XDG_STATE_HOME/lexiz/lexiz.log, falling back to
// ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lexiz", "lexiz.log"), nil
}
