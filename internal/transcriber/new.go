package transcriber

import (
	"github.com/openai/openai-go/v3"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

// New picks the backend named by cfg.AI.Provider.
func New(cfg *config.Config, log logger.Logger) (Transcriber, error) {
	if cfg.AI.Provider == config.ProviderGemini {
		ring, err := aiclient.NewGemini(cfg.Gemini, log)
		if err != nil {
			return nil, err
		}
		return NewGemini(ring, cfg.Gemini.Model, log), nil
	}
	return NewOpenAI(aiclient.NewOpenAI(cfg.AI), cfg.AI.TranscriptionModel, log), nil
}

type implOpenAI struct {
	client openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI transcribes through the audio transcriptions endpoint.
func NewOpenAI(client openai.Client, model string, log logger.Logger) Transcriber {
	return &implOpenAI{
		client: client,
		model:  model,
		logger: log,
	}
}

type implGemini struct {
	client aiclient.ContentGenerator
	model  string
	logger logger.Logger
}

// NewGemini transcribes by sending the audio bytes to a Gemini model.
func NewGemini(client aiclient.ContentGenerator, model string, log logger.Logger) Transcriber {
	return &implGemini{
		client: client,
		model:  model,
		logger: log,
	}
}
