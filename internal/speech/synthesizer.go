package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

const rawFileName = "raw_summary.mp3"

// Synthesize narrates req.Summary in the voice for req.Mood, then removes the
// lead-in. Clips no longer than the lead-in are kept whole.
func (s *implSynthesizer) Synthesize(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Summary) == "" {
		return "", model.SynthesisError("check summary", errors.New("summary is empty"))
	}

	voice := VoiceFor(req.Mood)
	s.logger.Info(ctx, "Synthesizing summary with voice %s (%s)", voice.Name, voice.Style)

	audio, err := s.speak(ctx, BuildSSML(req.Summary, voice), voice)
	if err != nil {
		return "", model.SynthesisError("text to speech", err)
	}

	rawPath := filepath.Join(req.Dir, rawFileName)
	if err := os.WriteFile(rawPath, audio, 0o644); err != nil {
		return "", model.SynthesisError("save raw audio", err)
	}
	defer s.removeRaw(ctx, rawPath)

	outPath := filepath.Join(req.Dir, DownloadName(req.Title))

	duration, err := s.measureDuration(ctx, rawPath)
	if err != nil {
		return "", model.SynthesisError("measure audio", err)
	}

	if duration <= s.cfg.LeadIn {
		s.logger.Warn(ctx, "Narration is %s, not longer than the %s lead-in; keeping it untrimmed", duration, s.cfg.LeadIn)
		if err := os.Rename(rawPath, outPath); err != nil {
			return "", model.SynthesisError("save audio", err)
		}
		return outPath, nil
	}

	if err := s.trimLeadIn(ctx, rawPath, outPath, s.cfg.LeadIn); err != nil {
		os.Remove(outPath)
		return "", model.SynthesisError("trim lead-in", err)
	}

	s.logger.Info(ctx, "Summary audio ready: %s (%s after trim)", outPath, duration-s.cfg.LeadIn)
	return outPath, nil
}

func (s *implSynthesizer) removeRaw(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn(ctx, "Failed to remove raw audio %s: %v", path, err)
	}
}
