// Package logging builds the zerolog loggers the CLI hands to the library.
// Library packages never log on their own; they receive a zerolog.Logger
// through their options and default to zerolog.Nop().
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger at the named level ("debug", "info", "warn",
// "error"; unknown levels fall back to info), writing JSON to w. Console
// switches to the human-readable console writer for interactive use.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Default returns a console logger on stderr at the given level, the usual
// CLI setup.
func Default(level string) zerolog.Logger {
	return New(os.Stderr, level, true)
}

// Nop returns a logger that discards everything, the library default.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
