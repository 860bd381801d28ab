package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"

	"github.com/nguyentantai21042004/podsnap/internal/aiclient"
	"github.com/nguyentantai21042004/podsnap/internal/model"
)

func (t *implOpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := checkAudio(audioPath); err != nil {
		return "", model.TranscriptionError("check audio", err)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", model.TranscriptionError("open audio", err)
	}
	defer file.Close()

	t.logger.Info(ctx, "Transcribing %s with model %s", audioPath, t.model)

	resp, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(t.model),
		ResponseFormat: openai.AudioResponseFormatJSON,
	})
	if err != nil {
		if code := aiclient.StatusCode(err); code != 0 {
			return "", model.TranscriptionError(fmt.Sprintf("transcription service returned %d", code), err)
		}
		return "", model.TranscriptionError("call transcription service", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", model.TranscriptionError("read transcript", errors.New("transcription response is empty"))
	}

	t.logger.Info(ctx, "Transcription complete: %d characters", len(text))
	return text, nil
}

func checkAudio(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", path)
	}
	return nil
}
