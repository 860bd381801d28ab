package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

type implWatcher struct {
	inputDir  string
	handler   EventHandler
	filter    func(path string) bool
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	settle    time.Duration
	wg        sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start handles new files in the inbox until ctx is cancelled, then waits for
// running handlers to finish.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", cap(w.semaphore), w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if w.filter != nil && !w.filter(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}
			w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch hands path to the handler once its copy has finished. A path that
// is already queued or running is ignored.
func (w *implWatcher) dispatch(ctx context.Context, path string) {
	w.mu.Lock()
	if _, ok := w.inFlight[path]; ok {
		w.mu.Unlock()
		return
	}
	w.inFlight[path] = struct{}{}
	w.mu.Unlock()

	w.logger.Info(ctx, "New audio detected: %s", path)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			delete(w.inFlight, path)
			w.mu.Unlock()
		}()

		if err := w.waitSettled(ctx, path); err != nil {
			w.logger.Warn(ctx, "Skipping %s: %v", path, err)
			return
		}

		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
}

// waitSettled returns once the file size holds steady for one settle period.
func (w *implWatcher) waitSettled(ctx context.Context, path string) error {
	last := int64(-1)
	for {
		select {
		case <-time.After(w.settle):
		case <-ctx.Done():
			return ctx.Err()
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == last && info.Size() > 0 {
			return nil
		}
		last = info.Size()
	}
}

// Stop closes the file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
