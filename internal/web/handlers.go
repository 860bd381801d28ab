package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podsnap/internal/export"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
	"github.com/nguyentantai21042004/podsnap/internal/source"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Handler serves the podcast summarizer UI.
type Handler struct {
	runCtx         context.Context
	registry       *Registry
	maxUploadBytes int64
	logger         logger.Logger
}

// NewHandler creates a Handler over registry. Runs it starts are bound to
// runCtx, not to the request, so cancelling runCtx aborts them.
func NewHandler(runCtx context.Context, registry *Registry, maxUploadBytes int64, log logger.Logger) *Handler {
	return &Handler{
		runCtx:         runCtx,
		registry:       registry,
		maxUploadBytes: maxUploadBytes,
		logger:         log,
	}
}

type pageData struct {
	Status
	Extensions string
	Notice     string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p := h.registry.Lookup(w, r)
	h.render(w, http.StatusOK, newStatus(p.Snapshot(), p.Busy()), "")
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	p := h.registry.Lookup(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.render(w, http.StatusRequestEntityTooLarge, newStatus(p.Snapshot(), p.Busy()),
				fmt.Sprintf("The file is larger than %d MB.", h.maxUploadBytes>>20))
			return
		}
		h.render(w, http.StatusBadRequest, newStatus(p.Snapshot(), p.Busy()), "Choose an audio file to upload.")
		return
	}
	defer file.Close()

	if !source.IsSupported(header.Filename) {
		h.render(w, http.StatusUnsupportedMediaType, newStatus(p.Snapshot(), p.Busy()),
			fmt.Sprintf("Unsupported file type %q.", filepath.Ext(header.Filename)))
		return
	}

	h.submit(w, r, p, model.FromUpload(header.Filename, file))
}

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	p := h.registry.Lookup(w, r)
	rawURL := strings.TrimSpace(r.FormValue("url"))
	if rawURL == "" {
		h.render(w, http.StatusBadRequest, newStatus(p.Snapshot(), p.Busy()), "Enter a YouTube link.")
		return
	}
	h.submit(w, r, p, model.FromURL(rawURL))
}

// submit starts a run that outlives the request; the page polls for progress.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, p processor.Processor, in model.Input) {
	_, err := p.Submit(h.runCtx, in)
	if errors.Is(err, model.ErrBusy) {
		h.render(w, http.StatusConflict, newStatus(p.Snapshot(), true), "A podcast is already being processed.")
		return
	}
	if err != nil {
		h.logger.Warn(r.Context(), "Submit failed: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	p := h.registry.Lookup(w, r)
	writeJSON(w, http.StatusOK, newStatus(p.Snapshot(), p.Busy()))
}

func (h *Handler) Audio(w http.ResponseWriter, r *http.Request) {
	h.serveAudio(w, r, false)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveAudio(w, r, true)
}

func (h *Handler) serveAudio(w http.ResponseWriter, r *http.Request, attachment bool) {
	s := h.registry.Lookup(w, r).Snapshot()
	if s.Stage != model.StageReady || s.SummaryAudioPath == "" {
		writeError(w, http.StatusNotFound, "no summary audio yet")
		return
	}

	f, err := os.Open(s.SummaryAudioPath)
	if err != nil {
		writeError(w, http.StatusNotFound, "summary audio is gone")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read summary audio")
		return
	}

	name := speech.DownloadName(s.Title)
	w.Header().Set("Content-Type", "audio/mpeg")
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	s := h.registry.Lookup(w, r).Snapshot()
	if s.Summary == "" && s.Transcript == "" {
		writeError(w, http.StatusNotFound, "nothing to export yet")
		return
	}

	tmp, err := os.CreateTemp("", "podsnap-*.docx")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create document")
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := export.WriteDocx(export.Document{Title: s.Title, Summary: s.Summary, Transcript: s.Transcript}, tmp.Name()); err != nil {
		h.logger.Error(r.Context(), "Failed to write document: %v", err)
		writeError(w, http.StatusInternalServerError, "write document")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", speech.Slug(s.Title)+".docx"))
	http.ServeFile(w, r, tmp.Name())
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	p := h.registry.Lookup(w, r)
	if err := p.Reset(r.Context()); errors.Is(err, model.ErrBusy) {
		h.render(w, http.StatusConflict, newStatus(p.Snapshot(), true), "Wait for the current podcast to finish before resetting.")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.registry.Len(),
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, st Status, notice string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := pageData{
		Status:     st,
		Extensions: strings.Join(source.SupportedExtensions, ","),
		Notice:     notice,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error(context.Background(), "Failed to render page: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
