package api

import (
	"context"
	"log/slog"
)

// LevelTrace sits below debug and records every driver stage.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLevel maps a level name to a slog level. Besides the slog names it
// accepts "trace".
func ParseLevel(name string) (slog.Level, error) {
	if name == "trace" || name == "TRACE" {
		return LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return level, nil
}
