// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu            sync.RWMutex
	defaultLogger = New(os.Stderr)
)

// New returns a logger writing to w. Terminals get the human-readable
// console format, everything else JSON lines.
func New(w io.Writer) zerolog.Logger {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsole returns a logger that renders human-readable lines to w
// without colour, for writers such as an interactive line editor.
func NewConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// GetDefaultLogger returns the shared logger.
func GetDefaultLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	l := defaultLogger
	return &l
}

// SetDefaultLogger replaces the shared logger.
func SetDefaultLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()

	defaultLogger = l
}

// Component derives a logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return GetDefaultLogger().With().Str("component", name).Logger()
}

// SetLevel sets the global level from a name such as "debug" or "warn".
// Unknown names fall back to info and are reported as false.
func SetLevel(name string) bool {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return false
	}
	zerolog.SetGlobalLevel(lvl)
	return true
}
