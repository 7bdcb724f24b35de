package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger with formatting and level based on env:
// prod gets JSON logs at INFO, anything else text logs at DEBUG.
// A nil writer means stderr.
func NewLogger(env string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

// OrDefault returns log, or slog.Default() when log is nil.
func OrDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
