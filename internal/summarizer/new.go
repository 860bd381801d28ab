package summarizer

import (
	"github.com/openai/openai-go/v3"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

// Options bound a single text generation call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

type implSummarizer struct {
	backend backend
	opts    Options
	logger  logger.Logger
}

type implClassifier struct {
	backend backend
	opts    Options
	logger  logger.Logger
}

// New creates the summarizer and, when mood detection is enabled, the mood
// classifier for the configured provider. The classifier is nil otherwise.
func New(cfg *config.Config, log logger.Logger) (Summarizer, MoodClassifier, error) {
	var b backend
	if cfg.AI.Provider == config.ProviderGemini {
		ring, err := aiclient.NewGemini(cfg.Gemini, log)
		if err != nil {
			return nil, nil, err
		}
		b = newGeminiBackend(ring, cfg.Gemini.Model)
	} else {
		b = newOpenAIBackend(aiclient.NewOpenAI(cfg.AI), cfg.AI.ChatModel)
	}

	s := &implSummarizer{
		backend: b,
		opts:    Options{MaxTokens: cfg.Summary.MaxTokens, Temperature: *cfg.Summary.Temperature},
		logger:  log,
	}
	if !cfg.Mood.IsEnabled() {
		return s, nil, nil
	}
	c := &implClassifier{
		backend: b,
		opts:    Options{MaxTokens: cfg.Mood.MaxTokens, Temperature: *cfg.Mood.Temperature},
		logger:  log,
	}
	return s, c, nil
}

// NewOpenAI creates a Summarizer over a chat completions model.
func NewOpenAI(client openai.Client, model string, opts Options, log logger.Logger) Summarizer {
	return &implSummarizer{backend: newOpenAIBackend(client, model), opts: opts, logger: log}
}

// NewOpenAIClassifier creates a MoodClassifier over a chat completions model.
func NewOpenAIClassifier(client openai.Client, model string, opts Options, log logger.Logger) MoodClassifier {
	return &implClassifier{backend: newOpenAIBackend(client, model), opts: opts, logger: log}
}

// NewGemini creates a Summarizer over a Gemini model.
func NewGemini(gen aiclient.ContentGenerator, model string, opts Options, log logger.Logger) Summarizer {
	return &implSummarizer{backend: newGeminiBackend(gen, model), opts: opts, logger: log}
}

// NewGeminiClassifier creates a MoodClassifier over a Gemini model.
func NewGeminiClassifier(gen aiclient.ContentGenerator, model string, opts Options, log logger.Logger) MoodClassifier {
	return &implClassifier{backend: newGeminiBackend(gen, model), opts: opts, logger: log}
}
