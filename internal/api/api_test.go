package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceSentinel/internal/model"
)

type stubRuns struct {
	latest *model.RunSummary
	err    error
	calls  int
}

func (s *stubRuns) Run(ctx context.Context) (*model.RunSummary, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.latest = &model.RunSummary{
		RunID: "run-2",
		Recommendations: []model.Recommendation{{
			ProductID:         "SG-01",
			ProductName:       "Classic Wood Sunglasses",
			Category:          model.CategorySunglasses,
			CurrentPrice:      29.99,
			RecommendedPrice:  29.49,
			Source:            model.SourceOptimizer,
			Stats:             model.PriceStats{Avg: 27.625, Median: 27.75, Count: 4},
			ProfitCurrent:     100,
			ProfitRecommended: 110,
		}},
	}
	return s.latest, nil
}

func (s *stubRuns) Latest() *model.RunSummary { return s.latest }

type stubHistory map[string][]float64

func (h stubHistory) PriceHistory(id string) ([]float64, error) {
	if id == "broken" {
		return nil, errors.New("db closed")
	}
	return h[id], nil
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, NewRouter(&stubRuns{}, nil), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRecommendations_NoRunYet(t *testing.T) {
	h := NewRouter(&stubRuns{}, nil)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/recommendations").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/recommendations/SG-01").Code)
}

func TestTriggerThenRead(t *testing.T) {
	runs := &stubRuns{}
	h := NewRouter(runs, nil)

	w := do(t, h, http.MethodPost, "/api/runs")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, runs.calls)

	var run runResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	assert.Equal(t, "run-2", run.RunID)
	assert.Equal(t, 10.0, run.ProfitDelta)
	assert.Equal(t, []string{}, run.Skipped)

	w = do(t, h, http.MethodGet, "/api/recommendations")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	require.Len(t, run.Recommendations, 1)
	assert.InDelta(t, 29.49, run.Recommendations[0].RecommendedPrice, 1e-9)

	for _, path := range []string{"/api/recommendations/SG-01", "/api/recommendations/Classic%20Wood%20Sunglasses"} {
		w = do(t, h, http.MethodGet, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		var rec recommendationResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&rec))
		assert.Equal(t, "Sunglasses", rec.Category)
		assert.Equal(t, 27.75, rec.Stats.Median)
		assert.Equal(t, "optimizer", rec.Source)
	}

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/recommendations/XX-99").Code)
}

func TestTriggerRun_Error(t *testing.T) {
	w := do(t, NewRouter(&stubRuns{err: errors.New("read overview: missing")}, nil), http.MethodPost, "/api/runs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"read overview: missing"}`, w.Body.String())
}

func TestPriceHistory(t *testing.T) {
	h := NewRouter(&stubRuns{}, stubHistory{"SG-01": {29.99, 29.49}})

	w := do(t, h, http.MethodGet, "/api/recommendations/SG-01/history")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product_id":"SG-01","prices":[29.99,29.49]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/recommendations/none/history")
	assert.JSONEq(t, `{"product_id":"none","prices":[]}`, w.Body.String())

	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/api/recommendations/broken/history").Code)
}

func TestHistoryRouteAbsentWithoutStore(t *testing.T) {
	w := do(t, NewRouter(&stubRuns{}, nil), http.MethodGet, "/api/recommendations/SG-01/history")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/recommendations", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	NewRouter(&stubRuns{}, nil).ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
