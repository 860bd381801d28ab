package executor

import "context"

// Executor runs external tools such as yt-dlp, ffmpeg and ffprobe.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether a tool is installed.
	LookPath(name string) (string, error)
}
