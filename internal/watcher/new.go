package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

// settleDelay is how long a dropped file's size must hold before it is read.
const settleDelay = 500 * time.Millisecond

// New creates a Watcher over inputDir that runs at most maxConcurrent handlers
// at once. Only files accepted by filter are handled.
func New(inputDir string, handler EventHandler, filter func(path string) bool, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		inputDir:  inputDir,
		handler:   handler,
		filter:    filter,
		logger:    log,
		watcher:   watcher,
		semaphore: make(chan struct{}, maxConcurrent),
		settle:    settleDelay,
		inFlight:  make(map[string]struct{}),
	}, nil
}
