// Package logger provides the structured logger used across crmctl,
// built on zerolog.
//
// Interactive runs get a human-readable console writer on stderr (stdout is
// reserved for command output); set log_format=json for machine-readable
// diagnostics.
//
//	logger.Setup("debug", "console")
//	logger.L.Warn().Str("collection", "tasks").Msg("list failed")
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// L is the shared logger. Setup replaces it; the zero value logs at warn
// level so packages can log before configuration is loaded.
var L = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// Setup configures the shared logger from config values.
func Setup(level, format string) {
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	if format == "json" {
		l = zerolog.New(os.Stderr)
	}

	L = l.Level(parseLevel(level)).With().Timestamp().Logger()
	log.Logger = L // libraries using zerolog's global pick it up too
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
