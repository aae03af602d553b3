package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the quiet period after the last change before reloading.
const DefaultWatchDebounce = 500 * time.Millisecond

// Watcher reloads the service when the schedule file changes.
//
// It watches the file's directory rather than the file itself: spreadsheet
// programs and editors save by writing a temp file and renaming it over the
// original, which drops a watch on the file.
type Watcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	service   *Service
	path      string
	debounce  time.Duration
	pending   bool
	lastEvent time.Time
	reloads   int
	running   bool
	closed    bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewWatcher creates a watcher that reloads service when path changes.
func NewWatcher(service *Service, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	return &Watcher{
		watcher:  fw,
		service:  service,
		path:     abs,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", w.path, fsnotify.ErrClosed)
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	slog.Info("watching schedule file", "path", w.path, "debounce", w.debounce)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher, waits for the event loop to exit and releases the
// file system handle. It is safe to call whether or not Start succeeded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	wasRunning := w.running
	w.running = false
	w.closed = true
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		slog.Error("watcher: close failed", "error", err)
	}
}

// Reloads returns how many reloads the watcher has triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 5
	if tick < 20*time.Millisecond {
		tick = 20 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "path", w.path, "error", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("schedule file changed", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// flush reloads once the file has been quiet for the debounce period.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	// Reload logs its own failures and keeps the previous snapshot.
	if err := w.service.Reload(ctx); err != nil {
		return
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
}
