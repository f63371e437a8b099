package ecpps

import (
	"os"

	"github.com/rs/zerolog"
)

// WorldOption augments how a World is constructed.
type WorldOption func(w *World)

// WithLogger replaces the world's logger entirely.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.Logger = logger
	}
}

// WithPrettyLog switches the world's logger to human-readable console
// output on stderr. Meant for local development.
func WithPrettyLog() WorldOption {
	return func(w *World) {
		w.Logger = w.Logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// WithLogLevel overrides the configured log level.
func WithLogLevel(level zerolog.Level) WorldOption {
	return func(w *World) {
		w.Logger = w.Logger.Level(level)
	}
}

// WithWorldID overrides the configured world ID used in log context.
func WithWorldID(id string) WorldOption {
	return func(w *World) {
		w.cfg.EcppsWorldID = id
	}
}
