package config

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher flags external modifications to the config file. It watches the
// parent directory rather than the file itself because most editors replace
// the file on save, which would drop an inode-level watch.
//
// The watcher never calls back into the shell: it only raises a flag that the
// engine polls between reads, keeping the core single-threaded.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce *Debouncer
	dirty    atomic.Bool
	done     chan struct{}
	logger   *zap.Logger
}

// NewWatcher watches path's directory for changes to path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	w := &Watcher{
		fsw:      fsw,
		path:     filepath.Clean(path),
		debounce: NewDebouncer(200 * time.Millisecond),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce.Debounce(func() {
				w.logger.Debug("config file changed on disk", zap.String("path", w.path))
				w.dirty.Store(true)
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Changed reports whether the file changed since the last call, clearing the
// flag. Writes made through the Store also land here; the engine's reload is
// idempotent so that is harmless.
func (w *Watcher) Changed() bool {
	return w.dirty.Swap(false)
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.debounce.Cancel()
	err := w.fsw.Close()
	<-w.done
	return err
}
