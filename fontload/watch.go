package fontload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/gtext/internal/logger"
)

// DefaultDebounce is the quiet period after the last change to a manifest
// before it is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
}

// WithDebounce sets the quiet period before a changed manifest is reloaded.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		c.debounce = d
	}
}

// Watch reloads the manifest at path whenever it is written, created or
// renamed into place and passes the result to onChange. Manifests that fail
// to load are logged and skipped. The directory of path is watched, so
// editors that replace the file atomically are supported.
//
// Watch blocks until ctx is done and then returns ctx.Err().
func Watch(ctx context.Context, path string, onChange func(*Manifest), opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&cfg)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fontload: watch: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("fontload: watch %q: %w", path, err)
	}

	timer := time.NewTimer(cfg.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return ctx.Err()
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(cfg.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return ctx.Err()
			}
			logger.Get().Warn("fontload: watcher error", "path", path, "err", err)

		case <-timer.C:
			m, err := LoadManifest(path)
			if err != nil {
				logger.Get().Warn("fontload: manifest reload failed", "path", path, "err", err)
				continue
			}
			logger.Get().Info("fontload: manifest reloaded", "path", path,
				"fonts", len(m.Fonts), "families", len(m.Families))
			onChange(m)
		}
	}
}
