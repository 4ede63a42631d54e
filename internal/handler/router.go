package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты галереи. ws may be nil when live updates are off.
func NewRouter(h *GalleryHandler, ws http.Handler, timeout time.Duration, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// long-lived, outside the request timeout
	if ws != nil {
		r.Handle("/ws", ws)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Get("/", h.Index)
		r.Get("/health", h.Health)
		r.Get("/css/style.css", h.Stylesheet)

		r.Get("/img/{filename}", h.Media("img"))
		r.Get("/videos/{filename}", h.Media("videos"))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/gallery", h.Gallery)
			r.Post("/gallery/reload", h.Reload)

			r.Route("/modal", func(r chi.Router) {
				r.Get("/", h.ModalState)
				r.Post("/open/{id}", h.Open)
				r.Post("/like", h.Like)
				r.Post("/close", h.Close)
				r.Post("/playback", h.Playback)
			})
		})
	})

	return r
}
