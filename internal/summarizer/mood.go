package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

const moodInstruction = "Analyze the tone of the following podcast summary and classify it as one of: 'joyful', 'serious', or 'neutral'. Respond with the single word only."

func (c *implClassifier) Classify(ctx context.Context, summary string) model.Mood {
	if strings.TrimSpace(summary) == "" {
		return model.MoodNeutral
	}

	raw, err := c.backend.complete(ctx, moodInstruction, summary, c.opts)
	if err != nil {
		c.logger.Debug(ctx, "Mood classification failed, using neutral: %v", err)
		return model.MoodNeutral
	}

	mood := model.ParseMood(raw)
	c.logger.Debug(ctx, "Mood classified as %s (raw %q)", mood, raw)
	return mood
}
