package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"PriceSentinel/internal/model"
)

type statsResponse struct {
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

type recommendationResponse struct {
	ProductID         string        `json:"product_id"`
	ProductName       string        `json:"product_name"`
	Category          string        `json:"category"`
	CurrentPrice      float64       `json:"current_price"`
	RecommendedPrice  float64       `json:"recommended_price"`
	Source            string        `json:"source"`
	Stats             statsResponse `json:"competitor_stats"`
	ProfitCurrent     float64       `json:"profit_current"`
	ProfitRecommended float64       `json:"profit_recommended"`
	ProfitDelta       float64       `json:"profit_delta"`
}

type runResponse struct {
	RunID           string                   `json:"run_id"`
	StartedAt       time.Time                `json:"started_at"`
	FinishedAt      time.Time                `json:"finished_at"`
	ProfitBefore    float64                  `json:"profit_before"`
	ProfitAfter     float64                  `json:"profit_after"`
	ProfitDelta     float64                  `json:"profit_delta"`
	Skipped         []string                 `json:"skipped"`
	Recommendations []recommendationResponse `json:"recommendations"`
}

func toRecommendation(r model.Recommendation) recommendationResponse {
	return recommendationResponse{
		ProductID:        r.ProductID,
		ProductName:      r.ProductName,
		Category:         string(r.Category),
		CurrentPrice:     r.CurrentPrice,
		RecommendedPrice: r.RecommendedPrice,
		Source:           string(r.Source),
		Stats: statsResponse{
			Avg:    r.Stats.Avg,
			Median: r.Stats.Median,
			StdDev: r.Stats.StdDev,
			Min:    r.Stats.Min,
			Max:    r.Stats.Max,
			Count:  r.Stats.Count,
		},
		ProfitCurrent:     r.ProfitCurrent,
		ProfitRecommended: r.ProfitRecommended,
		ProfitDelta:       r.ProfitDelta(),
	}
}

func toRun(s *model.RunSummary) runResponse {
	out := runResponse{
		RunID:           s.RunID,
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
		ProfitBefore:    s.ProfitBefore,
		ProfitAfter:     s.ProfitAfter,
		ProfitDelta:     s.ProfitDelta(),
		Skipped:         s.Skipped,
		Recommendations: make([]recommendationResponse, 0, len(s.Recommendations)),
	}
	if out.Skipped == nil {
		out.Skipped = []string{}
	}
	for _, r := range s.Recommendations {
		out.Recommendations = append(out.Recommendations, toRecommendation(r))
	}
	return out
}

type handler struct {
	runs    Runs
	history History
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// latestRun handles GET /api/recommendations.
func (h *handler) latestRun(w http.ResponseWriter, r *http.Request) {
	latest := h.runs.Latest()
	if latest == nil {
		writeError(w, http.StatusNotFound, "no pricing run yet")
		return
	}
	writeJSON(w, http.StatusOK, toRun(latest))
}

// recommendation handles GET /api/recommendations/{productID}. The path value
// matches a product ID first, then a product name.
func (h *handler) recommendation(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "productID")
	latest := h.runs.Latest()
	if latest == nil {
		writeError(w, http.StatusNotFound, "no pricing run yet")
		return
	}
	for _, rec := range latest.Recommendations {
		if rec.ProductID == key {
			writeJSON(w, http.StatusOK, toRecommendation(rec))
			return
		}
	}
	for _, rec := range latest.Recommendations {
		if rec.ProductName == key {
			writeJSON(w, http.StatusOK, toRecommendation(rec))
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (h *handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	prices, err := h.history.PriceHistory(productID)
	if err != nil {
		log.Printf("[ERROR] price history %s: %v", productID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if prices == nil {
		prices = []float64{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"product_id": productID, "prices": prices})
}

// triggerRun handles POST /api/runs. It blocks until the run completes.
func (h *handler) triggerRun(w http.ResponseWriter, r *http.Request) {
	summary, err := h.runs.Run(r.Context())
	if err != nil {
		log.Printf("[ERROR] triggered run: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toRun(summary))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Printf("[INFO] %s %s %d %v", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
