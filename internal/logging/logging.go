// Package logging provides the structured logger used across the
// monitor. Output goes to a rotated file by default so the terminal UI
// is never corrupted by log lines.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger output and verbosity.
type Config struct {
	Level      string `json:"level" validate:"omitempty,oneof=trace debug info warn error"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb" validate:"min=0"`
	MaxBackups int    `json:"max_backups" validate:"min=0"`
	MaxAgeDays int    `json:"max_age_days" validate:"min=0"`

	// Console sends human-readable output to stderr instead of the
	// rotated file. Only useful for headless runs.
	Console bool `json:"console"`
}

// DefaultConfig returns the logging defaults.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		File:       "m6502term.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// Service wraps a zerolog.Logger with keyvalue convenience methods.
type Service struct {
	logger zerolog.Logger
}

// New builds a logger from cfg.
func New(cfg Config) *Service {
	var w io.Writer
	if cfg.Console {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	} else {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Service{logger: logger}
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Service {
	return &Service{logger: zerolog.Nop()}
}

// Logger exposes the underlying zerolog.Logger.
func (s *Service) Logger() zerolog.Logger {
	return s.logger
}

func (s *Service) Debug(msg string, kv ...interface{}) {
	s.logger.Debug().Fields(kv).Msg(msg)
}

func (s *Service) Info(msg string, kv ...interface{}) {
	s.logger.Info().Fields(kv).Msg(msg)
}

func (s *Service) Warn(msg string, kv ...interface{}) {
	s.logger.Warn().Fields(kv).Msg(msg)
}

func (s *Service) Error(msg string, kv ...interface{}) {
	s.logger.Error().Fields(kv).Msg(msg)
}

// DebugWith returns the raw event for callers that want to attach typed
// fields before the message.
func (s *Service) DebugWith() *zerolog.Event {
	return s.logger.Debug()
}

// InfoWith returns the raw info event.
func (s *Service) InfoWith() *zerolog.Event {
	return s.logger.Info()
}

// ErrorWith returns the raw error event.
func (s *Service) ErrorWith() *zerolog.Event {
	return s.logger.Error()
}
