package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger: JSON to stdout, info level.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
