package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/victorward/dailytarot/internal/api"
	apimiddleware "github.com/victorward/dailytarot/internal/api/middleware"
)

// setupRouter wires the reading endpoints and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	readingHandler := api.NewReadingHandler(app.readings, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/readings/domain", readingHandler.SelectDomain)
		r.Post("/readings/pick", readingHandler.Pick)
		r.Post("/readings/reveal", readingHandler.Reveal)
		r.Post("/readings/restart", readingHandler.Restart)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
