package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc is called after the watched file settles.
type ReloadFunc func(ctx context.Context) error

// Watcher reloads the table when its data file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors that replace the file by rename keep triggering events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	dir      string
	base     string
	onReload ReloadFunc
	debounce time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup // event loop and in-flight reloads

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWatcher creates a watcher for path. A non-positive debounce uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, onReload ReloadFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		fsw:      fsw,
		path:     abs,
		dir:      filepath.Dir(abs),
		base:     filepath.Base(abs),
		onReload: onReload,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Reloads run with ctx until Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsw.Add(w.dir); err != nil {
		w.fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	slog.Info("watching table file", "path", w.path, "debounce", w.debounce)

	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for the event loop and any running reload
// to exit. No reload starts after Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	w.fsw.Close()
	w.wg.Wait()

	slog.Info("table watcher stopped", "path", w.path)
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("table watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Base(event.Name) != w.base {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("table file event", "path", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })
}

func (w *Watcher) reload(ctx context.Context) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	if err := w.onReload(ctx); err != nil {
		slog.Error("table reload after file change failed", "path", w.path, "error", err)
		return
	}
	slog.Info("table reloaded after file change", "path", w.path)
}
