package speech

import (
	"github.com/openai/openai-go/v3"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

type implSynthesizer struct {
	client   openai.Client
	model    string
	cfg      config.SynthesisConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Synthesizer that calls the speech endpoint of client and trims
// the lead-in with ffmpeg.
func New(client openai.Client, model string, cfg config.SynthesisConfig, exec executor.Executor, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		client:   client,
		model:    model,
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
