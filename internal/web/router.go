package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(h *Handler, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recovery(log))

	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Post("/extract", h.Extract)
	r.Get("/status", h.Status)
	r.Get("/audio", h.Audio)
	r.Get("/download", h.Download)
	r.Get("/summary.docx", h.Document)
	r.Post("/reset", h.Reset)
	r.Get("/health", h.Health)

	return r
}
