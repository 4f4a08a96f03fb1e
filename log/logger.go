// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var (
	// logger is the default logger instance for Confirmate.
	logger *slog.Logger

	// colorEnabled tracks whether ANSI colors are supported by the output.
	colorEnabled bool
)

func init() {
	// Detect color support based on terminal capabilities
	colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

	// Initialize with INFO level by default, wrapped with context handler
	logger = slog.New(newContextHandler(tint.NewHandler(os.Stdout, &tint.Options{
		Level:   LevelInfo,
		NoColor: !colorEnabled,
	})))
	slog.SetDefault(logger)
}

// Configure configures the default logger with the specified level string.
// Valid values: TRACE, DEBUG, INFO, WARN, ERROR in any letter case, plus
// slog's offset forms such as "INFO+2". "WARNING" is not accepted here.
// Returns an error if the level string is not recognized.
func Configure(levelStr string) error {
	var level Level
	err := level.UnmarshalText([]byte(levelStr))
	if err != nil {
		return err
	}

	// Create new handler with the specified level, wrapped with context handler
	logger = slog.New(newContextHandler(tint.NewHandler(os.Stdout, &tint.Options{
		Level:   level,
		NoColor: !colorEnabled,
	})))
	slog.SetDefault(logger)

	slog.Debug("Log level configured", slog.String("level", levelStr))
	return nil
}

// ColorEnabled returns whether ANSI color codes are supported by the output.
// This is automatically detected based on whether stdout is a terminal.
func ColorEnabled() bool {
	return colorEnabled
}

// Err is a re-export of tint.Err for convenient error formatting in log attributes.
// Usage: slog.Error("message", log.Err(err))
var Err = tint.Err

// Debug logs msg at TRACE-adjacent debug level with the given key/value
// attribute pairs, prepending any attributes carried on ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	logger.DebugContext(ctx, msg, args...)
}

// Info logs msg at info level.
func Info(ctx context.Context, msg string, args ...any) {
	logger.InfoContext(ctx, msg, args...)
}

// Warn logs msg at warn level.
func Warn(ctx context.Context, msg string, args ...any) {
	logger.WarnContext(ctx, msg, args...)
}

// Error logs msg at error level.
func Error(ctx context.Context, msg string, args ...any) {
	logger.ErrorContext(ctx, msg, args...)
}
