package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor save bursts into one reload
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes and hands the result to OnChange
// The parent directory is watched so atomic rename-on-save is seen
type Watcher struct {
	path     string
	loader   *Loader
	onChange func(*Config)
	debounce time.Duration
	logger   *slog.Logger

	watcher *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   bool
	lastEvent time.Time

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWatcher creates a watcher for path; debounce 0 selects DefaultDebounce
func NewWatcher(path string, loader *Loader, debounce time.Duration, onChange func(*Config)) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch: empty config path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		loader:   loader,
		onChange: onChange,
		debounce: debounce,
		logger:   loader.logger.With("component", "config-watcher"),
		watcher:  fsw,
	}, nil
}

// Start begins watching until ctx is done or Stop is called
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	w.wg.Add(1)
	go w.processEvents(ctx)

	w.logger.Info("Config watcher started", "path", w.path, "debounce", w.debounce)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			if w.takePending(now) {
				w.reload()
			}
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.pendingMu.Unlock()
}

// takePending reports whether a change is due, clearing it
func (w *Watcher) takePending(now time.Time) bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if !w.pending || now.Sub(w.lastEvent) < w.debounce {
		return false
	}
	w.pending = false
	return true
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load(w.path)
	if err != nil {
		// Keep running with the previous config until the file is fixed
		w.logger.Warn("Config reload rejected", "path", w.path, "error", err)
		return
	}
	w.logger.Info("Config reloaded", "path", w.path)
	w.onChange(cfg)
}
