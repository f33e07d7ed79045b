// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating application loggers
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text, console or logfmt
	Format string

	// File receives log output instead of stderr when set
	File string

	// Additional outputs (besides the primary one)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "text",
	}
}

// FromConfig derives a LoggerConfig from the application configuration.
// Empty settings keep the defaults.
func FromConfig(serviceName string, cfg config.LoggingConfig) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	lc.File = cfg.File
	return lc
}

// NewLogger creates a Foundation logger. The returned closer releases the
// log file, if one was opened, and is never nil.
func NewLogger(cfg LoggerConfig) (*plog.Logger, io.Closer, error) {
	level, err := plog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, perr.Wrap(err, "invalid log level").
			WithCode(perr.CodeInvalidConfig).
			WithDetail("level", cfg.Level)
	}
	format, err := plog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nopCloser{}, perr.Wrap(err, "invalid log format").
			WithCode(perr.CodeInvalidConfig).
			WithDetail("format", cfg.Format)
	}

	var output io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, closer, perr.Wrap(err, "failed to create log directory").
				WithCode(perr.CodeConfigError)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, perr.Wrap(err, "failed to open log file").
				WithCode(perr.CodeConfigError).
				WithDetail("file", cfg.File)
		}
		output, closer = f, f
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := plog.NewWithConfig(plog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
