package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceSentinel/internal/model"
)

func run(id string, at time.Time, price float64) *model.RunSummary {
	return &model.RunSummary{
		RunID:      id,
		StartedAt:  at,
		FinishedAt: at.Add(time.Second),
		Recommendations: []model.Recommendation{
			{ProductID: "SG-01", ProductName: "Classic Wood Sunglasses", Category: model.CategorySunglasses,
				Source: model.SourceOptimizer, RecommendedPrice: price, Stats: model.PriceStats{Avg: 27.6, Count: 4}},
			{ProductID: "BB-01", ProductName: "Bamboo Bottle", Category: model.CategoryBottles,
				Source: model.SourceFloor, RecommendedPrice: 16.49},
		},
		Skipped:      []string{"Unknown Product"},
		ProfitBefore: 100,
		ProfitAfter:  120,
		OutputPath:   "recommended_prices.csv",
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pricing.db"))
	require.NoError(t, err)
	defer rec.Close()

	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, rec.RecordRun(run("run-1", base, 29.49)))
	require.NoError(t, rec.RecordRun(run("run-2", base.Add(24*time.Hour), 29.99)))

	var runs, recs int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM pricing_runs`).Scan(&runs))
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&recs))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 4, recs)

	history, err := rec.PriceHistory("SG-01")
	require.NoError(t, err)
	assert.Equal(t, []float64{29.49, 29.99}, history)
}

func TestSQLiteRecorder_DuplicateRunRollsBack(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pricing.db"))
	require.NoError(t, err)
	defer rec.Close()

	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, rec.RecordRun(run("run-1", at, 29.49)))
	assert.Error(t, rec.RecordRun(run("run-1", at, 29.49)))

	var recs int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&recs))
	assert.Equal(t, 2, recs)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&model.RunSummary{}))
	assert.NoError(t, r.Close())
}
