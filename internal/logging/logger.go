// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/KGG-Code/mybooking-prueba-tecnica/config"
)

// New returns a logger writing JSON or console output to stdout, tagged
// with service.
func New(cfg config.LoggingConfig, service string) zerolog.Logger {
	return NewWithWriter(cfg, service, os.Stdout)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(cfg config.LoggingConfig, service string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	output := out
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("service", service).Logger()
}
