package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-web-host/internal/logger"
)

const defaultReloadDebounce = 100 * time.Millisecond

// ReloadFunc is called after every reload attempt. On failure cfg is nil and
// the previous configuration stays current.
type ReloadFunc func(cfg *Configuration, err error)

// Watcher re-reads the configuration when one of its reloadable file sources
// changes. It publishes new snapshots; it never mutates a snapshot that has
// already been handed out.
type Watcher struct {
	current  atomic.Pointer[Configuration]
	debounce time.Duration
	onReload []ReloadFunc

	logger *logger.Logger
}

// NewWatcher creates a Watcher starting from cfg. The watcher is idle until
// Run is called.
func NewWatcher(cfg *Configuration, logger *logger.Logger, onReload ...ReloadFunc) *Watcher {
	w := &Watcher{
		debounce: defaultReloadDebounce,
		onReload: onReload,
		logger:   logger,
	}
	w.current.Store(cfg)
	return w
}

// Name implements workers.Worker.
func (w *Watcher) Name() string {
	return "config-watcher"
}

// Current returns the latest successfully loaded configuration.
func (w *Watcher) Current() *Configuration {
	return w.current.Load()
}

// Run watches the reloadable sources until ctx is cancelled. It returns nil
// right away when ctx ends and an error only if the watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, source := range w.Current().Sources() {
		info := source.Info()
		if !info.Reloadable || info.Path == "" {
			continue
		}
		abs, err := filepath.Abs(info.Path)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	if len(files) == 0 {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	w.logger.Info().Int("files", len(files)).Msg("watching configuration files")

	reload := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, tracked := files[filepath.Clean(event.Name)]; !tracked {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("configuration watcher error")
		}
	}
}

func (w *Watcher) reload() {
	next, err := w.Current().Reload()
	if err != nil {
		w.logger.Error().Err(err).Msg("error reloading configuration, keeping previous")
	} else {
		w.current.Store(next)
		w.logger.Info().Int("keys", next.Len()).Msg("configuration reloaded")
	}

	for _, fn := range w.onReload {
		fn(next, err)
	}
}
