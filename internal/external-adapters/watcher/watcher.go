// Package watcher re-runs the gate when scripts under the root change.
// It lives in external-adapters to isolate the fsnotify dependency.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osg-htc/scriptgate/internal/domain/interfaces"
)

// defaultDebounce coalesces editor save bursts into one gate run
const defaultDebounce = 500 * time.Millisecond

// Watcher triggers a callback when files under a root change
type Watcher struct {
	root     string
	exclude  map[string]bool
	debounce time.Duration
	logger   interfaces.Logger
}

// New creates a watcher over root. Directory names in exclude are not
// watched.
func New(root string, exclude []string, debounce time.Duration, logger interfaces.Logger) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	return &Watcher{
		root:     root,
		exclude:  excluded,
		debounce: debounce,
		logger:   logger,
	}
}

// Watch blocks, invoking onChange after every debounced burst of
// filesystem events, until ctx is cancelled. Errors from onChange are
// logged, not fatal: a failing gate run must not stop the watch loop.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	//nolint:errcheck // Defer close on shutdown
	defer fsw.Close()

	dirs, err := w.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.logger.Info("watching for changes", interfaces.F("root", w.root), interfaces.F("dirs", len(dirs)))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			// New directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if sub, err := w.watchDirsUnder(event.Name); err == nil {
					for _, dir := range sub {
						_ = fsw.Add(dir)
					}
				}
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("change detected", interfaces.F("path", event.Name), interfaces.F("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				w.logger.Warn("gate run failed", interfaces.F("error", err))
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", interfaces.F("error", err))
		}
	}
}

// relevant filters out events inside excluded directories
func (w *Watcher) relevant(event fsnotify.Event) bool {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return true
	}

	for _, part := range splitPath(rel) {
		if w.exclude[part] {
			return false
		}
	}
	return true
}

// watchDirs collects every directory under the root, honoring excludes
func (w *Watcher) watchDirs() ([]string, error) {
	dirs, err := w.watchDirsUnder(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate watch dirs under %s: %w", w.root, err)
	}
	return dirs, nil
}

func (w *Watcher) watchDirsUnder(path string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && w.exclude[d.Name()] {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

func splitPath(path string) []string {
	return strings.Split(filepath.ToSlash(path), "/")
}
