package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command and returns its stdout
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdout.String(), fmt.Errorf("command '%s' interrupted: %w", name, ctxErr)
		}
		// Include stderr in error message for debugging
		stderrStr := lastLines(strings.TrimSpace(stderr.String()), 20)
		if stderrStr != "" {
			return stdout.String(), fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return stdout.String(), fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return stdout.String(), nil
}

func (e *implExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// lastLines keeps the tail of noisy tool output such as ffmpeg banners.
func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
