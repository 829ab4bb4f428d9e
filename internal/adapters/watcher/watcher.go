// Package watcher re-runs generation when the descriptor or profile changes.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is how long the watcher waits for a burst of events to settle.
const DefaultDebounceWindow = 200 * time.Millisecond

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	Window time.Duration
}

// New creates a Watcher with the default debounce window.
func New() *Watcher {
	return &Watcher{Window: DefaultDebounceWindow}
}

// Watch blocks until ctx is done, calling onChange after each settled batch of events on paths.
// Parent directories are watched so that editors replacing files by rename are seen.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func() error, onError func(error)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = fsw.Close() }()

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, absErr := filepath.Abs(p)
		if absErr != nil {
			abs = filepath.Clean(p)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if addErr := fsw.Add(dir); addErr != nil {
			return zerr.With(zerr.Wrap(addErr, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}

	window := w.Window
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	trigger := make(chan struct{}, 1)
	debouncer := NewDebouncer(window, func([]string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if _, watched := targets[filepath.Clean(event.Name)]; watched {
				debouncer.Add(event.Name)
			}
		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(zerr.Wrap(watchErr, domain.ErrWatchFailed.Error()))
			}
		case <-trigger:
			if changeErr := onChange(); changeErr != nil && onError != nil {
				onError(changeErr)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
