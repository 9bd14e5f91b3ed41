// Package logger holds the slog.Logger shared by gtext and its sub-packages.
//
// The root package re-exports Set and Get as gtext.SetLogger and
// gtext.Logger. Sub-packages import this package directly so that no
// import cycle is introduced.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNop() *slog.Logger { return slog.New(nopHandler{}) }

var ptr atomic.Pointer[slog.Logger]

func init() {
	ptr.Store(newNop())
}

// Set stores l as the active logger. Passing nil restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = newNop()
	}
	ptr.Store(l)
}

// Get returns the active logger. It is never nil.
func Get() *slog.Logger {
	return ptr.Load()
}
