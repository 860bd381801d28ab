package speech

import (
	"context"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// Request is one summary to narrate.
type Request struct {
	Summary string
	Mood    model.Mood
	Title   string
	// Dir is the session directory that receives the audio files.
	Dir string
}

// Synthesizer turns a summary into a narrated, trimmed mp3 and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (string, error)
}
