package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, status int, content string, got *chatRequest) config.AIConfig {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"failure"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return config.AIConfig{Provider: config.ProviderOpenAI, Endpoint: srv.URL, APIKey: "test"}
}

func TestSummarize(t *testing.T) {
	var req chatRequest
	cfg := chatServer(t, http.StatusOK, "  - point one\n- point two\n", &req)
	s := NewOpenAI(aiclient.NewOpenAI(cfg), "gpt-4o", Options{MaxTokens: 800, Temperature: 0.3}, logger.Nop())

	summary, err := s.Summarize(context.Background(), "today we talk about Go")
	require.NoError(t, err)

	assert.Equal(t, "- point one\n- point two", summary)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 800, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, summaryInstruction, req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "today we talk about Go", req.Messages[1].Content)
}

func TestSummarizeFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		content    string
		transcript string
	}{
		{name: "server error", status: http.StatusInternalServerError, transcript: "text"},
		{name: "rate limited", status: http.StatusTooManyRequests, transcript: "text"},
		{name: "blank content", status: http.StatusOK, content: "  ", transcript: "text"},
		{name: "empty transcript", status: http.StatusOK, content: "x", transcript: " \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := chatServer(t, tt.status, tt.content, nil)
			s := NewOpenAI(aiclient.NewOpenAI(cfg), "gpt-4o", Options{MaxTokens: 800, Temperature: 0.3}, logger.Nop())

			_, err := s.Summarize(context.Background(), tt.transcript)
			assert.ErrorIs(t, err, model.ErrSummarization)
		})
	}
}

func TestClassifyOpenAI(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reply  string
		want   model.Mood
	}{
		{name: "joyful", status: http.StatusOK, reply: "Joyful.", want: model.MoodJoyful},
		{name: "quoted serious", status: http.StatusOK, reply: "'serious'", want: model.MoodSerious},
		{name: "unexpected label", status: http.StatusOK, reply: "melancholic", want: model.MoodNeutral},
		{name: "transport failure", status: http.StatusInternalServerError, want: model.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req chatRequest
			got := &req
			if tt.status != http.StatusOK {
				got = nil
			}
			cfg := chatServer(t, tt.status, tt.reply, got)
			c := NewOpenAIClassifier(aiclient.NewOpenAI(cfg), "gpt-4o", Options{MaxTokens: 10, Temperature: 0.3}, logger.Nop())

			assert.Equal(t, tt.want, c.Classify(context.Background(), "a summary"))
			if got != nil {
				assert.Equal(t, 10, req.MaxTokens)
				assert.Equal(t, moodInstruction, req.Messages[0].Content)
			}
		})
	}
}

func TestClassifyEmptySummary(t *testing.T) {
	c := NewGeminiClassifier(&fakeGenerator{text: "joyful"}, "m", Options{}, logger.Nop())
	assert.Equal(t, model.MoodNeutral, c.Classify(context.Background(), ""))
}

type fakeGenerator struct {
	text   string
	err    error
	config *genai.GenerateContentConfig
	user   string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.config = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.user = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGeminiSummarize(t *testing.T) {
	gen := &fakeGenerator{text: "key points"}
	s := NewGemini(gen, "gemini-2.5-flash", Options{MaxTokens: 800, Temperature: 0.3}, logger.Nop())

	summary, err := s.Summarize(context.Background(), "transcript text")
	require.NoError(t, err)

	assert.Equal(t, "key points", summary)
	assert.Equal(t, "transcript text", gen.user)
	require.NotNil(t, gen.config)
	assert.Equal(t, int32(800), gen.config.MaxOutputTokens)
	require.NotNil(t, gen.config.SystemInstruction)
	assert.Equal(t, summaryInstruction, gen.config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, gen.config.ThinkingConfig)
	require.NotNil(t, gen.config.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(0), *gen.config.ThinkingConfig.ThinkingBudget)
}

func TestGeminiClassifyDisablesThinking(t *testing.T) {
	gen := &fakeGenerator{text: "Serious."}
	c := NewGeminiClassifier(gen, "gemini-2.5-flash", Options{MaxTokens: 10}, logger.Nop())

	assert.Equal(t, model.MoodSerious, c.Classify(context.Background(), "a grave summary"))
	require.NotNil(t, gen.config)
	assert.Equal(t, int32(10), gen.config.MaxOutputTokens)
	require.NotNil(t, gen.config.ThinkingConfig)
	require.NotNil(t, gen.config.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(0), *gen.config.ThinkingConfig.ThinkingBudget)
}

func TestGeminiFailures(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("all API keys exhausted")}

	s := NewGemini(gen, "m", Options{MaxTokens: 800}, logger.Nop())
	_, err := s.Summarize(context.Background(), "transcript")
	assert.ErrorIs(t, err, model.ErrSummarization)

	c := NewGeminiClassifier(gen, "m", Options{MaxTokens: 10}, logger.Nop())
	assert.Equal(t, model.MoodNeutral, c.Classify(context.Background(), "summary"))
}

func TestNewRespectsMoodSwitch(t *testing.T) {
	disabled := false
	cfg := &config.Config{AI: config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "k"}}
	cfg.Mood.Enabled = &disabled
	require.NoError(t, cfg.Validate())

	s, c, err := New(cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Nil(t, c)

	cfg.Mood.Enabled = nil
	_, c, err = New(cfg, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, c)
}
