// Package watch triggers full pipeline re-runs when project files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle time between a change burst and the rebuild.
// Editors often fire several events per save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a project directory and invokes a callback after changes
// settle. It performs no change analysis: every settled burst means a full
// rebuild.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	ignore   func(name string) bool
}

// New creates a Watcher over dir. The ignore function filters event paths;
// callers use it to exclude build outputs, whose writes would otherwise
// retrigger the build that produced them. A nil ignore keeps every event.
func New(dir string, debounce time.Duration, ignore func(name string) bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve watch dir: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", absDir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if ignore == nil {
		ignore = func(string) bool { return false }
	}

	return &Watcher{
		dir:      absDir,
		watcher:  fsw,
		debounce: debounce,
		ignore:   ignore,
	}, nil
}

// Run blocks, invoking onChange after each settled change burst, until the
// context is canceled or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.ignore(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
