package processor

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

// CheckTools verifies that the external binaries the pipeline shells out to
// are installed.
func CheckTools(cfg *config.Config, exec executor.Executor) error {
	var missing []string
	for _, tool := range []string{cfg.Extraction.BinaryPath, cfg.Synthesis.FFmpegPath, cfg.Synthesis.FFprobePath} {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tools not found: %s", strings.Join(missing, ", "))
	}
	return nil
}
