package processor

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// removeAll deletes the given artifacts and then the session directory.
// Deletion failures become cleanup warnings; they are logged and returned,
// never raised.
func (p *implProcessor) removeAll(ctx context.Context, artifacts []string, dir string) []error {
	// Cleanup must finish even when the run that owned the files was cancelled.
	ctx = context.WithoutCancel(ctx)

	var warnings []error
	for _, path := range artifacts {
		if w := p.removeWithRetry(ctx, path, p.remove); w != nil {
			warnings = append(warnings, w)
		}
	}
	if dir != "" {
		if w := p.removeWithRetry(ctx, dir, os.RemoveAll); w != nil {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// removeWithRetry deletes one path under the cleanup policy. A path that is
// already gone counts as deleted.
func (p *implProcessor) removeWithRetry(ctx context.Context, path string, remove func(string) error) error {
	attempts, err := p.cleanup.Do(ctx, func(attempt int) error {
		err := remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		p.logger.Debug(ctx, "Delete attempt %d for %s failed: %v", attempt, path, err)
		return err
	})
	if err != nil {
		warning := model.CleanupWarning("delete "+path, err)
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		return warning
	}

	p.logger.Debug(ctx, "Cleaned up temp file: %s (attempts: %d)", path, attempts)
	return nil
}
