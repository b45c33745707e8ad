// Package logging implements sonarqube.Logger on top of zerolog.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Format values.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds the logger settings of the CLI.
type Config struct {
	// Level is a zerolog level name; unknown values fall back to warn.
	Level string
	// Format is "console" or "json".
	Format  string
	Output  io.Writer
	NoColor bool
}

// Logger wraps zerolog.Logger and satisfies sonarqube.Logger.
type Logger struct {
	logger zerolog.Logger
}

// New creates a new logger instance with configuration.
func New(cfg Config) *Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == FormatJSON {
		zl = zerolog.New(cfg.Output)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: cfg.Output, NoColor: cfg.NoColor, TimeFormat: "15:04:05"})
	}

	return &Logger{logger: zl.Level(level).With().Timestamp().Logger()}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
