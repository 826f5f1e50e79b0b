package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"coursecanvas/internal/tools"
)

// Watch reloads the settings file whenever it changes and applies it to the
// manager via apply, which the caller should marshal onto its event thread.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, apply func(*File), log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors replace files on save, which drops a
	// watch held on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			f, err := Load(path)
			if err != nil {
				log.Warn("settings reload failed", "path", path, "err", err)
				continue
			}
			log.Info("settings reloaded", "path", path)
			apply(f)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", "err", err)
		}
	}
}

// ApplyFunc adapts Apply for use as a Watch callback. Watch delivers on the
// watcher goroutine and the manager is not goroutine safe, so run must hand
// the apply to the host's event thread (fyne.Do); nil runs it inline, which
// is only safe in single-threaded tests.
func ApplyFunc(m *tools.Manager, log *slog.Logger, run func(func())) func(*File) {
	if run == nil {
		run = func(fn func()) { fn() }
	}
	return func(f *File) {
		run(func() { Apply(f, m, log) })
	}
}
