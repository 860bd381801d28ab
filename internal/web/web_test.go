package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
)

type fakeProcessor struct {
	mu        sync.Mutex
	session   model.Session
	busy      bool
	submitted []model.Input
	uploaded  []byte
	resets    int
	submitErr error
}

func (f *fakeProcessor) Submit(ctx context.Context, in model.Input) (<-chan error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return nil, model.ErrBusy
	}
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if in.IsUpload() {
		f.uploaded, _ = io.ReadAll(in.Upload.Body)
	}
	f.submitted = append(f.submitted, in)
	done := make(chan error, 1)
	done <- nil
	close(done)
	return done, nil
}

func (f *fakeProcessor) Process(ctx context.Context, in model.Input) error {
	done, err := f.Submit(ctx, in)
	if err != nil {
		return err
	}
	return <-done
}

func (f *fakeProcessor) Wait(ctx context.Context) error {
	return nil
}

func (f *fakeProcessor) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return model.ErrBusy
	}
	f.resets++
	f.session = model.NewSession()
	return nil
}

func (f *fakeProcessor) Snapshot() model.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

func (f *fakeProcessor) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

type testServer struct {
	srv    *httptest.Server
	client *http.Client
	procs  []*fakeProcessor
	next   func() *fakeProcessor
	reg    *Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		next: func() *fakeProcessor { return &fakeProcessor{session: model.NewSession()} },
	}
	ts.reg = NewRegistry(func() processor.Processor {
		p := ts.next()
		ts.procs = append(ts.procs, p)
		return p
	}, time.Minute, logger.Nop())

	ts.srv = httptest.NewServer(NewRouter(NewHandler(context.Background(), ts.reg, 1<<20, logger.Nop()), logger.Nop()))
	t.Cleanup(ts.srv.Close)

	ts.client = &http.Client{
		Jar: &jar{},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return ts
}

// jar is a minimal cookie jar for a single host.
type jar struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

func (j *jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = append(j.cookies, cookies...)
}

func (j *jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cookies
}

func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := ts.client.Get(ts.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := ts.client.PostForm(ts.srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (ts *testServer) upload(t *testing.T, filename string, data []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := ts.client.Post(ts.srv.URL+"/upload", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIndexSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `name="audio"`)
	assert.Contains(t, string(body), `name="url"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	ts.get(t, "/")
	assert.Len(t, ts.procs, 1, "the cookie should map back to the same session")
}

func TestUploadSubmits(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.upload(t, "ep1.mp3", []byte("audio bytes"))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	require.Len(t, ts.procs, 1)
	p := ts.procs[0]
	require.Len(t, p.submitted, 1)
	assert.Equal(t, "ep1.mp3", p.submitted[0].Upload.Filename)
	assert.Equal(t, []byte("audio bytes"), p.uploaded)
}

func TestUploadRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		statuses []int
	}{
		{
			name:     "unsupported type",
			filename: "notes.txt",
			data:     []byte("x"),
			statuses: []int{http.StatusUnsupportedMediaType},
		},
		{
			// The multipart parser may surface the size limit as a malformed form.
			name:     "too large",
			filename: "big.mp3",
			data:     bytes.Repeat([]byte("a"), 2<<20),
			statuses: []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			resp := ts.upload(t, tt.filename, tt.data)
			assert.Contains(t, tt.statuses, resp.StatusCode)
			for _, p := range ts.procs {
				assert.Empty(t, p.submitted)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postForm(t, "/extract", url.Values{"url": {"https://youtu.be/abc&t=1"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, ts.procs, 1)
	require.Len(t, ts.procs[0].submitted, 1)
	assert.Equal(t, "https://youtu.be/abc&t=1", ts.procs[0].submitted[0].URL)

	resp = ts.postForm(t, "/extract", url.Values{"url": {"  "}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBusyConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.next = func() *fakeProcessor {
		return &fakeProcessor{session: model.Session{Stage: model.StageTranscribing}, busy: true}
	}

	resp := ts.postForm(t, "/extract", url.Values{"url": {"https://youtu.be/abc"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ts.postForm(t, "/reset", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	page := ts.get(t, "/")
	body, _ := io.ReadAll(page.Body)
	assert.Contains(t, string(body), `http-equiv="refresh"`)
	assert.Contains(t, string(body), "Transcribing audio...")
}

func readySession(t *testing.T) model.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ep1-summary.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 narration"), 0o644))
	return model.Session{
		Stage:            model.StageReady,
		Title:            "Episode One",
		Transcript:       "hello and welcome",
		Summary:          "- a key point",
		Mood:             model.MoodJoyful,
		SourceAudioPath:  filepath.Join(t.TempDir(), "source.mp3"),
		SummaryAudioPath: path,
	}
}

func TestStatusJSON(t *testing.T) {
	ts := newTestServer(t)
	ready := readySession(t)
	ready.Warnings = []error{model.CleanupWarning("delete /tmp/x", os.ErrPermission)}
	ts.next = func() *fakeProcessor { return &fakeProcessor{session: ready} }

	resp := ts.get(t, "/status")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, model.StageReady, st.Stage)
	assert.True(t, st.Ready)
	assert.Equal(t, "episode-one-summary.mp3", st.DownloadName)
	assert.Equal(t, model.MoodJoyful, st.Mood)
	assert.Empty(t, st.Errors)
	require.Len(t, st.Warnings, 1)
	assert.Equal(t, "A temporary file could not be removed.", st.Warnings[0].Headline)
}

func TestStatusShowsErrors(t *testing.T) {
	ts := newTestServer(t)
	failed := model.NewSession()
	failed.Errors = []error{model.SynthesisError("text to speech", io.ErrUnexpectedEOF)}
	ts.next = func() *fakeProcessor { return &fakeProcessor{session: failed} }

	page := ts.get(t, "/")
	body, _ := io.ReadAll(page.Body)
	assert.Contains(t, string(body), "Error converting summary to audio.")
	assert.Contains(t, string(body), "unexpected EOF")
}

func TestAudioAndDownload(t *testing.T) {
	ts := newTestServer(t)
	ready := readySession(t)
	ts.next = func() *fakeProcessor { return &fakeProcessor{session: ready} }

	resp := ts.get(t, "/audio")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/mpeg", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ID3 narration", string(data))

	resp = ts.get(t, "/download")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="episode-one-summary.mp3"`, resp.Header.Get("Content-Disposition"))
}

func TestAudioNotReady(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, ts.get(t, "/audio").StatusCode)
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/download").StatusCode)
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/summary.docx").StatusCode)
}

func TestSummaryDocument(t *testing.T) {
	ts := newTestServer(t)
	ready := readySession(t)
	ts.next = func() *fakeProcessor { return &fakeProcessor{session: ready} }

	resp := ts.get(t, "/summary.docx")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="episode-one.docx"`, resp.Header.Get("Content-Disposition"))
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "docx is a zip archive")
}

func TestReset(t *testing.T) {
	ts := newTestServer(t)
	ready := readySession(t)
	ts.next = func() *fakeProcessor { return &fakeProcessor{session: ready} }

	resp := ts.postForm(t, "/reset", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, ts.procs, 1)
	assert.Equal(t, 1, ts.procs[0].resets)
	assert.Equal(t, model.NewSession(), ts.procs[0].Snapshot())
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var procs []*fakeProcessor
	reg := NewRegistry(func() processor.Processor {
		p := &fakeProcessor{session: model.NewSession()}
		procs = append(procs, p)
		return p
	}, 10*time.Minute, logger.Nop())
	reg.now = func() time.Time { return now }

	lookup := func() {
		reg.Lookup(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	lookup()
	lookup()
	require.Equal(t, 2, reg.Len())
	procs[1].busy = true

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 0, reg.Sweep(context.Background()))

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, reg.Sweep(context.Background()))
	assert.Equal(t, 1, reg.Len(), "busy sessions survive the sweep")
	assert.Equal(t, 1, procs[0].resets)
	assert.Equal(t, 0, procs[1].resets)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
