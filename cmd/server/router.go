package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/recallio/pace-api/internal/api"
	apimiddleware "github.com/recallio/pace-api/internal/api/middleware"
)

// setupRouter wires the HTTP routes and the standard middleware stack.
func setupRouter(reviewHandler *api.ReviewHandler, planHandler *api.PlanHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/reviews", reviewHandler.SubmitReview)
		r.Post("/topics/due", reviewHandler.TopicsDue)
		r.Post("/plans", planHandler.GeneratePlan)
	})

	return r
}
