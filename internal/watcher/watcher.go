// Package watcher reports settled changes to a fixed set of files.
//
// Editors rarely write a file in one operation: many truncate and rewrite, or
// write a temporary file and rename it over the original. The watcher therefore
// observes each file's parent directory and only emits once the file has been
// quiet for the settle delay.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors individual files for changes.
type Watcher struct {
	logger *slog.Logger
	opts   Options
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string]bool        // watched file paths
	dirs    map[string]bool        // parent directories registered with fsnotify
	pending map[string]*time.Timer // path -> settle timer

	events   chan Event
	errors   chan error
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a file watcher.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		fsw:     fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[string]*time.Timer),
		events:  make(chan Event, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Watch adds a regular file to the watch set.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files[abs] = true
	dir := filepath.Dir(abs)
	if w.dirs[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		delete(w.files, abs)
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dirs[dir] = true

	w.logger.Debug("watching file", "path", abs)
	return nil
}

// Start processes file system events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("dropping watcher error", "error", err)
			}
		}
	}
}

// Stop releases the watcher. Pending changes are discarded.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, t := range w.pending {
			t.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		err = w.fsw.Close()
	})
	return err
}

// Events returns the channel of settled changes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of errors reported by the platform watcher.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] {
		return
	}

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.opts.SettleDelay, func() {
		w.settle(path)
	})
}

func (w *Watcher) settle(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	event := Event{Type: EventRemoved, Path: path}
	if info, err := os.Stat(path); err == nil {
		event = Event{
			Type:    EventModified,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
	}

	w.logger.Debug("file settled", "path", path, "type", event.Type.String())

	select {
	case w.events <- event:
	case <-w.done:
	}
}
