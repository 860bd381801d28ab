package summarizer

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

const summaryInstruction = "Summarize the following podcast transcript into key points suitable for a 6-minute audio summary."

// Summarize sends the transcript with a fixed instruction and returns the
// model's reply trimmed of surrounding whitespace.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", model.SummarizationError("check transcript", errors.New("transcript is empty"))
	}

	s.logger.Info(ctx, "Summarizing transcript (%d characters)", len(transcript))

	summary, err := s.backend.complete(ctx, summaryInstruction, transcript, s.opts)
	if err != nil {
		return "", model.SummarizationError("generate summary", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", model.SummarizationError("read summary", errors.New("response has no content"))
	}

	s.logger.Info(ctx, "Summary generated: %d characters", len(summary))
	return summary, nil
}
