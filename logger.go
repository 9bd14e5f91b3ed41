package gtext

import (
	"log/slog"

	"github.com/gogpu/gtext/internal/logger"
)

// SetLogger configures the logger for gtext and all its sub-packages.
// By default, gtext produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gtext:
//   - [slog.LevelDebug]: cache misses, fonts loaded, shaping anomalies
//   - [slog.LevelInfo]: atlas resets, manifest reloads
//   - [slog.LevelWarn]: font load failures, corrupt glyph bitmaps, oversized glyphs
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	gtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger used by gtext. It is never nil.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Get()
}
