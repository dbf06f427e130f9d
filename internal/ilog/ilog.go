// Package ilog wires up the structured logger shared by the cmd/ entry
// points, and gives library packages a nil-safe way to log sparingly
// without forcing every caller to thread a *slog.Logger through.
package ilog

import (
	"log/slog"
	"os"
)

// Setup installs a text handler writing to stderr as the process-wide
// default logger, matching cmd/jeebie/main.go's own slog.NewTextHandler +
// slog.SetDefault setup. verbose selects slog.LevelDebug over the default
// slog.LevelInfo.
func Setup(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Or returns logger if non-nil, otherwise the process-wide default. Library
// code (store, asm) takes an optional *slog.Logger and calls
// this at the point of use rather than storing a resolved logger, so a
// caller that installs a new default after construction is still honored.
func Or(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
