package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the decision-engine routes onto a chi router
func NewRouter(handlers *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/comments/process", handlers.ProcessCommentHandler)
		r.Put("/settings/{userID}", handlers.UpdateSettingsHandler)
		r.Put("/brand-voice/{userID}", handlers.UpdateBrandVoiceHandler)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
