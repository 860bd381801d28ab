package speech

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// measureDuration asks ffprobe for the length of an audio file.
func (s *implSynthesizer) measureDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := s.executor.Execute(ctx, s.cfg.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	secs, err := strconv.ParseFloat(strings.TrimSpace(firstLine(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// trimLeadIn drops the first leadIn of src and re-encodes the rest to dst.
func (s *implSynthesizer) trimLeadIn(ctx context.Context, src, dst string, leadIn time.Duration) error {
	_, err := s.executor.Execute(ctx, s.cfg.FFmpegPath,
		"-y",
		"-ss", formatSeconds(leadIn),
		"-i", src,
		"-c:a", "libmp3lame",
		"-b:a", s.cfg.Bitrate,
		dst,
	)
	if err != nil {
		return fmt.Errorf("ffmpeg trim: %w", err)
	}
	return nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
