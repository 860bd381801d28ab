package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

const fallbackTitle = "podcast"

// CleanURL drops everything from the first '&' on, which strips playlist and
// tracking parameters, and checks that what is left is an http(s) URL.
func CleanURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if i := strings.Index(cleaned, "&"); i >= 0 {
		cleaned = strings.TrimSpace(cleaned[:i])
	}
	if cleaned == "" {
		return "", errors.New("no URL provided")
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("URL has no host")
	}
	return cleaned, nil
}

// FromURL downloads the best audio stream of a video and converts it to mp3.
// The output file decides success: yt-dlp can exit zero without producing it.
func (r *implResolver) FromURL(ctx context.Context, dir string, rawURL string) (Audio, error) {
	cleaned, err := CleanURL(rawURL)
	if err != nil {
		return Audio{}, model.ExtractionError("clean url", err)
	}

	out := filepath.Join(dir, "source."+r.cfg.AudioFormat)
	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", r.cfg.AudioFormat,
		"--audio-quality", r.cfg.AudioQuality,
		"--no-playlist",
		"--no-simulate",
		"--print", "title",
		"-o", filepath.Join(dir, "source.%(ext)s"),
		cleaned,
	}

	r.logger.Info(ctx, "Extracting audio from %s", cleaned)
	stdout, runErr := r.executor.Execute(ctx, r.cfg.BinaryPath, args...)

	if err := fileNonEmpty(out); err != nil {
		if runErr != nil {
			return Audio{}, model.ExtractionError("yt-dlp", runErr)
		}
		return Audio{}, model.ExtractionError("yt-dlp", fmt.Errorf("no audio produced: %w", err))
	}
	if runErr != nil {
		r.logger.Warn(ctx, "yt-dlp reported an error but produced %s: %v", out, runErr)
	}

	title := firstLine(stdout)
	if title == "" {
		title = videoID(cleaned)
	}

	r.logger.Info(ctx, "Extracted %q to %s", title, out)
	return Audio{Path: out, Title: title}, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func videoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fallbackTitle
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if base := strings.Trim(u.Path, "/"); base != "" {
		return filepath.Base(base)
	}
	return fallbackTitle
}
