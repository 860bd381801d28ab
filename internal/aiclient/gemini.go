package aiclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

// ContentGenerator is the slice of the Gemini models API the pipeline uses.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a generator bound to one API key.
type ClientFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// KeyRing spreads Gemini calls over several API keys, moving to the next key
// when the current one is rate limited.
type KeyRing struct {
	mu      sync.Mutex
	keys    []string
	current int
	clients map[string]ContentGenerator
	factory ClientFactory
	logger  logger.Logger
}

// NewGemini returns a KeyRing over the configured Gemini keys.
func NewGemini(cfg config.GeminiConfig, log logger.Logger) (*KeyRing, error) {
	return NewKeyRing(cfg.Keys(), defaultFactory, log)
}

// NewKeyRing builds a KeyRing with a custom client factory.
func NewKeyRing(keys []string, factory ClientFactory, log logger.Logger) (*KeyRing, error) {
	if len(keys) == 0 {
		return nil, errors.New("gemini api key is required")
	}
	return &KeyRing{
		keys:    keys,
		clients: make(map[string]ContentGenerator, len(keys)),
		factory: factory,
		logger:  log,
	}, nil
}

func defaultFactory(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// GenerateContent tries each key at most once, starting from the last one that worked.
func (k *KeyRing) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for range k.keys {
		idx, client, err := k.client(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			k.rotate(idx)
			continue
		}

		resp, err := client.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			if isRateLimited(err) {
				k.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				k.rotate(idx)
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate content: %w", err)
		}
		return resp, nil
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (k *KeyRing) client(ctx context.Context) (int, ContentGenerator, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	idx := k.current
	key := k.keys[idx]
	if c, ok := k.clients[key]; ok {
		return idx, c, nil
	}
	c, err := k.factory(ctx, key)
	if err != nil {
		return idx, nil, err
	}
	k.clients[key] = c
	return idx, c, nil
}

// rotate advances past idx unless another call already did.
func (k *KeyRing) rotate(idx int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.current == idx {
		k.current = (k.current + 1) % len(k.keys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// ResponseText joins the text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
