package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"figment/internal/logging"
)

// Watcher monitors configuration files (characters roster, theme palettes)
// for edits. The catalog and palettes are loaded once at startup and stay
// immutable, so a change only produces a restart-required notice through the
// OnChange callback; nothing is hot-reloaded.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	onChange  func(path string)
	logger    *logging.Logger

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// debounceWindow collapses the burst of events most editors emit per save.
const debounceWindow = 500 * time.Millisecond

// NewWatcher creates a watcher over the given files. Paths that do not exist
// yet are still covered: the parent directory is watched and events are
// filtered by name. onChange runs on the watcher goroutine.
func NewWatcher(files []string, onChange func(path string), logger *logging.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.WithContext("error", err.Error()).Error("failed to create fsnotify watcher")
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		files:     make(map[string]bool, len(files)),
		onChange:  onChange,
		logger:    logger,
		lastSeen:  make(map[string]time.Time),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.WithFields(map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			}).Warn("failed to watch directory")
		}
	}

	return w, nil
}

// Start begins the event loop. It returns immediately; the loop stops when
// ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.WithContext("file_count", len(w.files)).Debug("file watcher started")
	go w.eventLoop(ctx)
}

func (w *Watcher) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.fsWatcher.Close()
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.WithContext("error", err.Error()).Error("watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	now := time.Now()
	if now.Sub(w.lastSeen[abs]) < debounceWindow {
		w.mu.Unlock()
		return
	}
	w.lastSeen[abs] = now
	w.mu.Unlock()

	w.logger.WithFields(map[string]interface{}{
		"file_path":  abs,
		"event_type": event.Op.String(),
	}).Warn("configuration file changed on disk, restart to apply")

	if w.onChange != nil {
		w.onChange(abs)
	}
}
