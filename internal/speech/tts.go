package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
)

// speechPayload is the body of an audio/speech call with SSML input.
type speechPayload struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	TextType       string `json:"text_type"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// MarshalJSON is required: the openai client only encodes request bodies that
// implement json.Marshaler.
func (p speechPayload) MarshalJSON() ([]byte, error) {
	type plain speechPayload
	return json.Marshal(plain(p))
}

// speak posts the SSML document and returns the raw audio bytes.
func (s *implSynthesizer) speak(ctx context.Context, ssml string, voice Voice) ([]byte, error) {
	payload := speechPayload{
		Model:          s.model,
		Input:          ssml,
		TextType:       "ssml",
		Voice:          voice.Name,
		ResponseFormat: s.cfg.ResponseFormat,
	}

	var resp *http.Response
	if err := s.client.Post(ctx, "audio/speech", payload, &resp); err != nil {
		if code := aiclient.StatusCode(err); code != 0 {
			return nil, fmt.Errorf("speech service returned %d: %w", code, err)
		}
		return nil, fmt.Errorf("call speech service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("speech service returned %d: %s", resp.StatusCode, body)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech service returned no audio")
	}
	return audio, nil
}
