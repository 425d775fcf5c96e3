// Package logger wraps zerolog for use throughout the CLI.
//
// Two constructors cover the two modes the CLI runs in: New for normal
// console output on stderr, Nop for TUI mode and tests where log output
// would interfere with the display.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available
// directly on *Logger.
type Logger struct {
	zerolog.Logger
}

// New returns a console logger writing to stderr. Debug output is enabled
// when GBP_DEBUG is set.
func New() *Logger {
	level := zerolog.WarnLevel
	if os.Getenv("GBP_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
