package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func NewLogger(w io.Writer, env string, level string) zerolog.Logger {
	// Validate log level
	l := zerolog.InfoLevel // Info by default
	switch level {
	case "debug":
		l = zerolog.DebugLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	case "info":
	default:
		fallback := zerolog.New(w)
		fallback.Warn().Str("value", level).Msg("Invalid log level. Using default level: info")
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	switch env {
	case "prod":
		return zerolog.New(w).Level(l).With().Timestamp().Logger()
	default:
		console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
		return zerolog.New(console).Level(l).With().Timestamp().Logger()
	}
}
