package transcriber

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/model"
)

const transcribePrompt = "Transcribe this podcast audio accurately. Return only the transcript text."

func (t *implGemini) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := checkAudio(audioPath); err != nil {
		return "", model.TranscriptionError("check audio", err)
	}

	mimeType, err := audioMIMEType(audioPath)
	if err != nil {
		return "", model.TranscriptionError("detect audio type", err)
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", model.TranscriptionError("read audio", err)
	}

	t.logger.Info(ctx, "Transcribing %s (%s, %d bytes) with %s", audioPath, mimeType, len(data), t.model)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribePrompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	resp, err := t.client.GenerateContent(ctx, t.model, contents, &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", model.TranscriptionError("call gemini", err)
	}

	text := strings.TrimSpace(aiclient.ResponseText(resp))
	if text == "" {
		return "", model.TranscriptionError("read transcript", errors.New("transcription response is empty"))
	}

	t.logger.Info(ctx, "Transcription complete: %d characters", len(text))
	return text, nil
}

func audioMIMEType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return "audio/wav", nil
	case ".mp3":
		return "audio/mpeg", nil
	case ".m4a", ".mp4":
		return "audio/mp4", nil
	case ".webm":
		return "audio/webm", nil
	case ".ogg":
		return "audio/ogg", nil
	case ".flac":
		return "audio/flac", nil
	case ".aac":
		return "audio/aac", nil
	case "":
		return "", errors.New("audio file has no extension")
	}

	mimeType := strings.TrimSpace(strings.Split(mime.TypeByExtension(ext), ";")[0])
	if !strings.HasPrefix(mimeType, "audio/") {
		return "", fmt.Errorf("unsupported audio extension %s", ext)
	}
	return mimeType, nil
}
