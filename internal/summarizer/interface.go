package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// Summarizer condenses a podcast transcript into key points for narration.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// MoodClassifier labels the tone of a summary. It never fails: anything it
// cannot classify is neutral.
type MoodClassifier interface {
	Classify(ctx context.Context, summary string) model.Mood
}
