package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DocumentWatcher reloads the input document when the file behind it
// changes on disk. Only used when the loader reads a local path.
type DocumentWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(ctx context.Context)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewDocumentWatcher creates a watcher for the document path. onChange
// runs debounced after each write.
func NewDocumentWatcher(path string, onChange func(ctx context.Context), logger *zap.Logger) (*DocumentWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory rather than the file so atomic saves
	// (write to temp, rename over) are still observed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch document directory: %w", err)
	}

	return &DocumentWatcher{
		path:     path,
		watcher:  watcher,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for document changes.
func (w *DocumentWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("document watcher started", zap.String("path", w.path))
}

// Stop stops watching for document changes.
func (w *DocumentWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("document watcher stopped")
}

func (w *DocumentWatcher) watchLoop() {
	// Debounce so editors that fire multiple writes trigger one reload.
	var debounceTimer *time.Timer
	debounceDuration := 200 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.logger.Info("document changed, reloading", zap.String("path", w.path))
					w.onChange(context.Background())
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}
