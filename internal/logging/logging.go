// Package logging builds the zerolog logger shared by the session, the
// server and the CLI.
//
// Logs always go to stderr when running the tool server, since stdout
// carries the JSON-RPC stream.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hsv-wizard/internal/config"
)

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// New returns a timestamped logger writing to w. Format "json" writes raw
// JSON lines; anything else uses the human-readable console writer.
func New(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// FromConfig returns a stderr logger configured from cfg.
func FromConfig(cfg *config.Config) zerolog.Logger {
	return New(os.Stderr, ParseLevel(cfg.LogLevel), cfg.LogFormat)
}
