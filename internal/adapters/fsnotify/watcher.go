// Package fsnotify watches the config file using github.com/fsnotify/fsnotify.
// It watches the parent directory rather than the file itself (editors
// replace files on save, which would drop a direct watch) and debounces
// rapid events.
package fsnotify

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 250 * time.Millisecond

// Watcher fires a callback when a single watched file changes.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch monitors filePath and calls onChange after each write or rename.
func (w *Watcher) Watch(filePath string, onChange func()) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}
	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	go func() {
		var last time.Time
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) {
					continue
				}
				now := time.Now()
				if now.Sub(last) < debounceInterval {
					continue
				}
				last = now
				onChange()

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Watch errors are not fatal; keep watching.

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
