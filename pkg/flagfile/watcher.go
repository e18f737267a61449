package flagfile

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// Watcher re-loads a flag configuration file whenever it changes on disk
// and swaps the result into an evaluator. The parent directory is watched
// rather than the file itself, so atomic replace-by-rename (the common way
// config files are updated) is picked up too.
type Watcher struct {
	path     string
	eval     *feature.Evaluator
	log      *slog.Logger
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger for reload outcomes. Nil loggers are ignored.
func WithLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// WithDebounce sets how long the watcher waits after the last change
// before re-loading, coalescing editor save bursts into one reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for the flag file at path that feeds eval.
// Run must be called to start watching.
func NewWatcher(path string, eval *feature.Evaluator, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		eval:     eval,
		log:      slog.Default(),
		debounce: 100 * time.Millisecond,
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until the context is canceled. It blocks, so it is usually
// launched in its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.ErrorContext(ctx, "flag file watcher error", "error", err)
		}
	}
}

// reload parses the file and swaps it in. A parse failure keeps the last
// good snapshot: the file is often observed half-written, and serving
// stale flags beats disabling everything mid-flight.
func (w *Watcher) reload(ctx context.Context) {
	reg, err := Load(w.path)
	if err != nil {
		w.log.WarnContext(ctx, "flag file reload failed, keeping previous flags",
			"path", w.path, "error", err)
		return
	}
	w.eval.Reload(reg)
	w.log.InfoContext(ctx, "flag file reloaded", "path", w.path, "flags", reg.Len())
}

// Close stops the underlying filesystem watcher. Run returns after Close.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}
