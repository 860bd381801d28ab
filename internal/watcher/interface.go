package watcher

import "context"

// Watcher monitors the inbox folder for dropped audio files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one dropped file.
type EventHandler func(ctx context.Context, filePath string) error
