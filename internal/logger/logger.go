// Package logger provides leveled logging to stderr.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a logging level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var (
	mu     sync.RWMutex
	level  = WarnLevel
	output = log.New(os.Stderr, "", log.LstdFlags)
)

// ParseLevel maps a level name to a Level. Unknown names fall back to InfoLevel.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Init sets the active level by name.
func Init(name string) {
	mu.Lock()
	level = ParseLevel(name)
	mu.Unlock()
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = log.New(w, "", 0)
	mu.Unlock()
}

// Enabled reports whether messages at l are emitted.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return level <= l
}

func logf(l Level, prefix, format string, args []any) {
	if !Enabled(l) {
		return
	}
	mu.RLock()
	out := output
	mu.RUnlock()
	_ = out.Output(3, prefix+fmt.Sprintf(format, args...))
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...any) { logf(DebugLevel, "[DEBUG] ", format, args) }

// Info logs a message at InfoLevel
func Info(format string, args ...any) { logf(InfoLevel, "[INFO] ", format, args) }

// Warn logs a message at WarnLevel
func Warn(format string, args ...any) { logf(WarnLevel, "[WARN] ", format, args) }

// Error logs a message at ErrorLevel
func Error(format string, args ...any) { logf(ErrorLevel, "[ERROR] ", format, args) }
