package logger

import (
	"log/slog"
	"os"
)

// New returns the process wide structured logger. LOG_LEVEL=debug lowers the
// threshold; everything else logs at info.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
