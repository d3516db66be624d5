package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"PriceSentinel/internal/model"
)

// Runs exposes the latest pricing run and lets clients trigger a new one.
type Runs interface {
	Run(ctx context.Context) (*model.RunSummary, error)
	Latest() *model.RunSummary
}

// History looks up past recommended prices. *recorder.SQLiteRecorder satisfies it.
type History interface {
	PriceHistory(productID string) ([]float64, error)
}

// NewRouter builds the HTTP API. history may be nil, in which case the history
// route is not mounted.
func NewRouter(runs Runs, history History) http.Handler {
	h := &handler{runs: runs, history: history}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/recommendations", h.latestRun)
		r.Get("/recommendations/{productID}", h.recommendation)
		if history != nil {
			r.Get("/recommendations/{productID}/history", h.priceHistory)
		}
		r.Post("/runs", h.triggerRun)
	})
	return r
}
