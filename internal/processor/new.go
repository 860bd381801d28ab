package processor

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/source"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
	"github.com/nguyentantai21042004/podsnap/internal/summarizer"
	"github.com/nguyentantai21042004/podsnap/internal/transcriber"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
	"github.com/nguyentantai21042004/podsnap/pkg/retry"
)

// Dependencies are the pipeline steps. Classifier may be nil, in which case
// every summary is narrated in the neutral voice.
type Dependencies struct {
	Resolver    source.Resolver
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Classifier  summarizer.MoodClassifier
	Synthesizer speech.Synthesizer
}

// NewDependencies builds the configured pipeline steps. They hold no session
// state and can be shared by every Processor.
func NewDependencies(cfg *config.Config, exec executor.Executor, log logger.Logger) (Dependencies, error) {
	tr, err := transcriber.New(cfg, log)
	if err != nil {
		return Dependencies{}, fmt.Errorf("create transcriber: %w", err)
	}
	sum, mood, err := summarizer.New(cfg, log)
	if err != nil {
		return Dependencies{}, fmt.Errorf("create summarizer: %w", err)
	}

	return Dependencies{
		Resolver:    source.New(cfg.Extraction, exec, log),
		Transcriber: tr,
		Summarizer:  sum,
		Classifier:  mood,
		Synthesizer: speech.New(aiclient.NewOpenAI(cfg.AI), cfg.AI.SpeechModel, cfg.Synthesis, exec, log),
	}, nil
}

// Option customizes a Processor.
type Option func(*implProcessor)

// WithRemover replaces os.Remove for artifact deletion.
func WithRemover(remove func(path string) error) Option {
	return func(p *implProcessor) {
		p.remove = remove
	}
}

// WithSleep replaces the pause between cleanup attempts.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *implProcessor) {
		p.cleanup.Sleep = sleep
	}
}

type implProcessor struct {
	cfg     *config.Config
	deps    Dependencies
	logger  logger.Logger
	cleanup retry.Policy
	remove  func(path string) error

	mu      sync.Mutex
	session model.Session
	dir     string
	running bool
	idle    chan struct{}
}

// New creates a Processor with an idle session.
func New(cfg *config.Config, deps Dependencies, log logger.Logger, opts ...Option) Processor {
	p := &implProcessor{
		cfg:    cfg,
		deps:   deps,
		logger: log,
		cleanup: retry.Policy{
			MaxAttempts: cfg.Cleanup.MaxAttempts,
			Interval:    cfg.Cleanup.Interval,
		},
		remove:  os.Remove,
		session: model.NewSession(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
