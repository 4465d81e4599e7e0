package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/viralit/client/internal/config"
)

// NewLogger creates a structured zerolog.Logger carrying the service and
// environment from the config. Logs go to stderr so command output on stdout
// stays machine readable.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return newLogger(os.Stderr, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	ctx := zerolog.New(w).With().Timestamp()

	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		ctx = ctx.Str("env", string(cfg.Environment))
	}

	logger := ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
