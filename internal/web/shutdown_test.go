package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
	"github.com/nguyentantai21042004/podsnap/internal/source"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

type gatedTranscriber struct {
	started chan struct{}
	release chan struct{}
}

func (g *gatedTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	close(g.started)
	select {
	case <-g.release:
		return "transcript", nil
	case <-ctx.Done():
		return "", model.TranscriptionError("call transcription service", ctx.Err())
	}
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	return "- a point", nil
}

type fileSynthesizer struct{}

func (fileSynthesizer) Synthesize(ctx context.Context, req speech.Request) (string, error) {
	path := filepath.Join(req.Dir, speech.DownloadName(req.Title))
	return path, os.WriteFile(path, []byte("ID3"), 0o644)
}

type shutdownFixture struct {
	temp       string
	tr         *gatedTranscriber
	reg        *Registry
	srv        *httptest.Server
	cancelRuns context.CancelFunc
}

func newShutdownFixture(t *testing.T) *shutdownFixture {
	t.Helper()

	cfg := &config.Config{AI: config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "k"}}
	cfg.Paths.Temp = t.TempDir()
	require.NoError(t, cfg.Validate())

	f := &shutdownFixture{
		temp: cfg.Paths.Temp,
		tr:   &gatedTranscriber{started: make(chan struct{}), release: make(chan struct{})},
	}
	deps := processor.Dependencies{
		Resolver:    source.New(cfg.Extraction, executor.New(), logger.Nop()),
		Transcriber: f.tr,
		Summarizer:  stubSummarizer{},
		Synthesizer: fileSynthesizer{},
	}
	f.reg = NewRegistry(func() processor.Processor {
		return processor.New(cfg, deps, logger.Nop())
	}, time.Minute, logger.Nop())

	runCtx, cancel := context.WithCancel(context.Background())
	f.cancelRuns = cancel
	t.Cleanup(cancel)

	f.srv = httptest.NewServer(NewRouter(NewHandler(runCtx, f.reg, 1<<20, logger.Nop()), logger.Nop()))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *shutdownFixture) startUpload(t *testing.T) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", "ep1.mp3")
	require.NoError(t, err)
	_, err = fw.Write([]byte("audio bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Post(f.srv.URL+"/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	select {
	case <-f.tr.started:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not reach transcription")
	}
}

func (f *shutdownFixture) tempEntries(t *testing.T) []string {
	t.Helper()
	var names []string
	err := filepath.Walk(f.temp, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path != f.temp {
			names = append(names, path)
		}
		return nil
	})
	require.NoError(t, err)
	return names
}

func TestCloseAbortsRunsAndRemovesFiles(t *testing.T) {
	f := newShutdownFixture(t)
	f.startUpload(t)
	require.NotEmpty(t, f.tempEntries(t))

	f.cancelRuns()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	f.reg.Close(ctx)

	assert.Equal(t, 0, f.reg.Len())
	assert.Empty(t, f.tempEntries(t))
}

func TestCloseWaitsForRunToFinish(t *testing.T) {
	f := newShutdownFixture(t)
	f.startUpload(t)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(f.tr.release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	f.reg.Close(ctx)

	assert.Equal(t, 0, f.reg.Len())
	assert.Empty(t, f.tempEntries(t), "the finished session is reset, not orphaned")
}
