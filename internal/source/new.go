package source

import (
	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

type implResolver struct {
	cfg      config.ExtractionConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Resolver that stores uploads and extracts audio with yt-dlp.
func New(cfg config.ExtractionConfig, exec executor.Executor, log logger.Logger) Resolver {
	return &implResolver{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
