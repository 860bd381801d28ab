// Package aiclient builds the remote AI clients shared by the transcriber,
// summarizer and speech packages.
package aiclient

import (
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"

	"github.com/nguyentantai21042004/podsnap/internal/config"
)

// NewOpenAI returns a client for the OpenAI-compatible service. For Azure the
// model names passed to each call are routed as deployment names. Calls are
// never retried by the client.
func NewOpenAI(cfg config.AIConfig, extra ...option.RequestOption) openai.Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.Provider == config.ProviderAzure {
		opts = append(opts,
			azure.WithEndpoint(strings.TrimRight(cfg.Endpoint, "/"), cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
		)
	} else {
		if cfg.Endpoint != "" {
			opts = append(opts, option.WithBaseURL(cfg.Endpoint))
		}
		if cfg.APIKey != "" {
			opts = append(opts, option.WithAPIKey(cfg.APIKey))
		}
	}
	opts = append(opts, extra...)
	return openai.NewClient(opts...)
}

// StatusCode extracts the HTTP status of a failed OpenAI call, or 0.
func StatusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
