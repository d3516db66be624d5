package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"PriceSentinel/internal/catalog"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/recorder"
	"PriceSentinel/internal/report"
	"PriceSentinel/internal/strategy"
)

// Paths locates the batch inputs and output.
type Paths struct {
	OverviewCSV string
	MappingCSV  string
	DataDir     string
	OutputCSV   string
	StateFile   string // optional JSON snapshot of the latest run
}

// Runner performs one pass over the catalog per Run call.
type Runner struct {
	engine   *strategy.Engine
	recorder recorder.Recorder
	paths    Paths

	runMu    sync.Mutex // serializes runs
	latestMu sync.RWMutex
	latest   *model.RunSummary
}

// NewRunner creates a Runner.
func NewRunner(engine *strategy.Engine, rec recorder.Recorder, paths Paths) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	r := &Runner{engine: engine, recorder: rec, paths: paths}
	if paths.StateFile != "" {
		latest, err := LoadLatest(paths.StateFile)
		if err != nil {
			log.Printf("[WARN] load last run snapshot: %v", err)
		} else if latest != nil {
			log.Printf("[INFO] restored last run %s", latest.RunID)
			r.latest = latest
		}
	}
	return r
}

// Run recommends a price for every mapped product with a catalog entry, writes the
// recommendation file and records the run. Only unreadable overview or mapping files
// abort the run; everything else is skipped per product.
func (r *Runner) Run(ctx context.Context) (*model.RunSummary, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	summary := &model.RunSummary{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now(),
		OutputPath: r.paths.OutputCSV,
	}
	log.Printf("[INFO] pricing run %s started", summary.RunID)

	products, err := catalog.ReadOverview(r.paths.OverviewCSV)
	if err != nil {
		return nil, err
	}
	entries, err := catalog.ReadMapping(r.paths.MappingCSV, r.paths.DataDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pricing run cancelled: %w", err)
		}

		product, ok := products[entry.Name]
		if !ok {
			log.Printf("[WARN] %s: no catalog entry, skipping", entry.Name)
			summary.Skipped = append(summary.Skipped, entry.Name)
			continue
		}
		if entry.ProductID != "" {
			product.ID = entry.ProductID
		}

		obs, err := catalog.ReadObservations(entry.DataFile)
		if err != nil {
			log.Printf("[WARN] %s: %v, treating as empty sample", entry.Name, err)
			obs = nil
		}

		rec := r.engine.Recommend(ctx, product, obs)
		summary.ProfitBefore += rec.ProfitCurrent
		summary.ProfitAfter += rec.ProfitRecommended
		summary.Recommendations = append(summary.Recommendations, rec)
	}

	if r.paths.OutputCSV != "" {
		if err := report.WriteFile(r.paths.OutputCSV, summary.Recommendations); err != nil {
			return nil, fmt.Errorf("write recommendations: %w", err)
		}
	}
	summary.FinishedAt = time.Now()

	if err := r.recorder.RecordRun(summary); err != nil {
		log.Printf("[ERROR] record run %s: %v", summary.RunID, err)
	}
	if r.paths.StateFile != "" {
		if err := SaveLatest(r.paths.StateFile, summary); err != nil {
			log.Printf("[ERROR] save last run snapshot: %v", err)
		}
	}

	r.latestMu.Lock()
	r.latest = summary
	r.latestMu.Unlock()

	for _, line := range report.SummaryLines(summary) {
		log.Printf("[INFO] %s", line)
	}
	return summary, nil
}

// Latest returns the most recent successful run, or nil.
func (r *Runner) Latest() *model.RunSummary {
	r.latestMu.RLock()
	defer r.latestMu.RUnlock()
	return r.latest
}
