package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
)

// backend runs one system+user prompt and returns the model's text.
type backend interface {
	complete(ctx context.Context, system, user string, opts Options) (string, error)
}

type openAIBackend struct {
	client openai.Client
	model  string
}

func newOpenAIBackend(client openai.Client, model string) backend {
	return &openAIBackend{client: client, model: model}
}

func (b *openAIBackend) complete(ctx context.Context, system, user string, opts Options) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(int64(opts.MaxTokens)),
		Temperature: openai.Float(opts.Temperature),
	})
	if err != nil {
		if code := aiclient.StatusCode(err); code != 0 {
			return "", fmt.Errorf("chat completion returned %d: %w", code, err)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type geminiBackend struct {
	gen   aiclient.ContentGenerator
	model string
}

func newGeminiBackend(gen aiclient.ContentGenerator, model string) backend {
	return &geminiBackend{gen: gen, model: model}
}

func (b *geminiBackend) complete(ctx context.Context, system, user string, opts Options) (string, error) {
	resp, err := b.gen.GenerateContent(ctx, b.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		MaxOutputTokens:   int32(opts.MaxTokens),
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		// Thinking tokens count against MaxOutputTokens.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", err
	}
	return aiclient.ResponseText(resp), nil
}
