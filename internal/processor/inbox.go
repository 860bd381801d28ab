package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/podsnap/internal/export"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// NewFileHandler returns a watcher handler that runs each dropped audio file
// through a fresh Processor, exports the result to outDir and removes the
// dropped file. Failed files stay in the inbox.
func NewFileHandler(newProcessor func() Processor, outDir string, log logger.Logger) func(ctx context.Context, path string) error {
	return func(ctx context.Context, path string) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open dropped file: %w", err)
		}
		defer f.Close()

		p := newProcessor()
		if err := p.Process(ctx, model.FromUpload(filepath.Base(path), f)); err != nil {
			return fmt.Errorf("process %s: %w", filepath.Base(path), err)
		}
		defer func() {
			if err := p.Reset(ctx); err != nil {
				log.Warn(ctx, "Failed to reset session for %s: %v", path, err)
			}
		}()

		written, err := export.Session(p.Snapshot(), outDir)
		if err != nil {
			return fmt.Errorf("export %s: %w", filepath.Base(path), err)
		}
		for _, w := range written {
			log.Info(ctx, "Output: %s", w)
		}

		if err := os.Remove(path); err != nil {
			log.Warn(ctx, "Failed to remove processed file %s: %v", path, err)
		}
		return nil
	}
}
