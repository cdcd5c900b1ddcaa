package knowledge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sahaaya/internal/core/ports/driven"
	"github.com/custodia-labs/sahaaya/internal/logger"
)

// Verify interface compliance.
var _ driven.KnowledgeWatcher = (*Watcher)(nil)

// defaultDebounce coalesces the burst of events editors emit on save.
const defaultDebounce = 200 * time.Millisecond

// Watcher reports edits to a knowledge base file.
// The parent directory is watched so atomic renames are seen.
type Watcher struct {
	path     string
	debounce time.Duration
}

// NewWatcher returns a watcher for the file at path.
func NewWatcher(path string) *Watcher {
	return &Watcher{path: path, debounce: defaultDebounce}
}

// WithDebounce sets the quiet period before onChange fires.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is cancelled, calling onChange once per burst of
// writes to the file.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	if w.path == "" {
		return errors.New("knowledge watcher: no file to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	logger.Debug("watching knowledge base %s", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.handleFsEvent(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("knowledge watcher: %v", err)
		case <-timer.C:
			onChange()
		}
	}
}

// handleFsEvent reports whether event changed the watched file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
