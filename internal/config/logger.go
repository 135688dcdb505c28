package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger every component logger derives from. The
// level is scoped to the returned logger rather than zerolog's global state,
// so embedded uses and tests keep their own levels.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		// Validate() rejects unknown levels before this runs.
		level = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if cfg.Format == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	return out.Level(level).With().Timestamp().Logger()
}
