package data

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// CatalogWatcher re-runs the exercise import whenever the catalog file changes
type CatalogWatcher struct {
	importer *Importer
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// NewCatalogWatcher creates a watcher for the catalog at path
func NewCatalogWatcher(importer *Importer, path string, debounce time.Duration, logger *zap.Logger) *CatalogWatcher {
	return &CatalogWatcher{
		importer: importer,
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
	}
}

// Run watches until ctx is cancelled. The parent directory is watched so that
// editors replacing the file atomically are still observed.
func (w *CatalogWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("Watching lesson catalog", zap.String("path", w.path))

	var (
		mu    sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup
	)
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	reimport := func() {
		defer wg.Done()
		if _, err := w.importer.SeedFromFile(ctx, w.path); err != nil {
			w.logger.Warn("Catalog re-import failed", zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			if timer == nil || !timer.Stop() {
				wg.Add(1)
			}
			timer = time.AfterFunc(w.debounce, reimport)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Catalog watcher error", zap.Error(err))
		}
	}
}
