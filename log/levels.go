// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Log levels for Confirmate.
// We re-export standard slog levels and add a custom TRACE level for very detailed logging.
const (
	// LevelTrace is a custom log level below DEBUG for very detailed logging (e.g., SQL queries).
	// This is set to -8 to be below slog.LevelDebug (-4).
	LevelTrace = slog.LevelDebug - 4 // -8

	// Standard slog levels (re-exported for convenience)
	LevelDebug = slog.LevelDebug // -4
	LevelInfo  = slog.LevelInfo  // 0
	LevelWarn  = slog.LevelWarn  // 4
	LevelError = slog.LevelError // 8
)

// Level wraps slog.Level to additionally recognize the TRACE level string
// form in configuration files, while delegating every other string (e.g.
// "INFO+2") to slog.Level's own parsing.
type Level slog.Level

// String returns the slog-formatted level name.
func (l Level) String() string {
	return slog.Level(l).String()
}

// Level implements slog.Leveler so a Level can be passed directly as a
// handler's minimum-level option.
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// UnmarshalText parses a level string, recognizing TRACE (in any letter
// case, like slog's own names) in addition to every form
// slog.Level.UnmarshalText accepts.
func (l *Level) UnmarshalText(text []byte) error {
	if strings.EqualFold(string(text), "TRACE") {
		*l = Level(LevelTrace)
		return nil
	}

	var sl slog.Level
	if err := sl.UnmarshalText(text); err != nil {
		return &InvalidLevelError{Level: string(text)}
	}
	*l = Level(sl)
	return nil
}

// MarshalJSON serializes the level as its string form.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON parses a JSON string into a Level.
func (l *Level) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return l.UnmarshalText([]byte(s))
}

// ParseLevel converts a string to a slog.Level, supporting our custom TRACE level.
// Valid values: TRACE, DEBUG, INFO, WARN, WARNING, ERROR
// Returns an error if the level string is not recognized.
func ParseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, &InvalidLevelError{Level: levelStr}
	}
}

// InvalidLevelError is returned when ParseLevel receives an invalid level string.
type InvalidLevelError struct {
	Level string
}

func (e *InvalidLevelError) Error() string {
	return "unknown log level: " + e.Level + " (valid: TRACE, DEBUG, INFO, WARN, ERROR)"
}
