// ABOUTME: Level-filtered logging over slog levels, written to a swappable writer
// ABOUTME: Defaults to stderr; the interactive host redirects it so the grid stays intact

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var level atomic.Int64

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// ParseLevel maps "debug", "info", "warn" or "error" to a level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// SetOutput redirects all log lines to w and returns the previous writer.
// A nil w discards output.
func SetOutput(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(l slog.Level, tag, format string, args []any) {
	if slog.Level(level.Load()) > l {
		return
	}
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "["+tag+"] "+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) { emit(LevelDebug, "DEBUG", format, args) }

// Info logs an info message if the level allows it.
func Info(format string, args ...any) { emit(LevelInfo, "INFO", format, args) }

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) { emit(LevelWarn, "WARN", format, args) }

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "[ERROR] "+format+"\n", args...)
}

// Component prefixes every message with a component name. It satisfies
// popup.Logger.
type Component string

func (c Component) Debug(format string, args ...any) {
	Debug(string(c)+": "+format, args...)
}

func (c Component) Info(format string, args ...any) {
	Info(string(c)+": "+format, args...)
}

func (c Component) Warn(format string, args ...any) {
	Warn(string(c)+": "+format, args...)
}
