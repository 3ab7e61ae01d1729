package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text handler on stdout; level comes from
// config so operators can flip on debug without rebuilding.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
