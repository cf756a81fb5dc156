// Package logging provides configurable zap logger creation.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger. Format is "json", "console" or "noop";
// level is any zapcore level name ("debug", "info", "warn", "error").
// Empty values default to console at info.
func NewLogger(level, format string) (*zap.Logger, error) {
	logLevel := zapcore.InfoLevel
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		logLevel = lvl
	}

	switch format {
	case "noop":
		return zap.NewNop(), nil
	case "json":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		return cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	case "console", "":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		return cfg.Build(
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
	default:
		return nil, fmt.Errorf("invalid log format %q: must be one of: console, json, noop", format)
	}
}
