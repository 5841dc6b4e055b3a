package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/review-assistant/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and the
// form routes. No request timeout middleware is installed: a submission
// legitimately blocks until every suggestion call has finished.
func NewRouter(reviewHandler *handler.ReviewHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", reviewHandler.ShowForm)
	r.Post("/", reviewHandler.Analyze)

	return r
}
