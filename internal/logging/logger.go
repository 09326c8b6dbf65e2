package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the daemon's JSON slog logger at the provided level, falling
// back to info when the level string is invalid. Log lines must never carry
// payload text, dial strings or PINs; callers log ids and statuses only.
func New(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// Discard returns a logger that drops all output, for tests that wire the
// engine or syncer without caring about log lines.
func Discard() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}
