package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"PriceSentinel/internal/model"
)

// SQLiteRecorder persists pricing runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pricing_runs (
			run_id        TEXT PRIMARY KEY,
			started_at    INTEGER NOT NULL,
			finished_at   INTEGER NOT NULL,
			product_count INTEGER,
			skipped       TEXT,
			profit_before REAL,
			profit_after  REAL,
			output_path   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON pricing_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id             TEXT NOT NULL REFERENCES pricing_runs(run_id),
			product_id         TEXT,
			product_name       TEXT NOT NULL,
			category           TEXT,
			source             TEXT,
			current_price      REAL,
			recommended_price  REAL,
			avg_price          REAL,
			median_price       REAL,
			std_price          REAL,
			min_price          REAL,
			max_price          REAL,
			competitor_count   INTEGER,
			profit_current     REAL,
			profit_recommended REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_run ON recommendations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recs_product ON recommendations(product_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores a run and its recommendations in one transaction.
func (r *SQLiteRecorder) RecordRun(run *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO pricing_runs
		(run_id, started_at, finished_at, product_count, skipped, profit_before, profit_after, output_path)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.FinishedAt.Unix(), len(run.Recommendations),
		strings.Join(run.Skipped, "\n"), run.ProfitBefore, run.ProfitAfter, run.OutputPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO recommendations
		(run_id, product_id, product_name, category, source, current_price, recommended_price,
		 avg_price, median_price, std_price, min_price, max_price, competitor_count,
		 profit_current, profit_recommended)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare recommendation insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range run.Recommendations {
		st := rec.Stats
		if _, err := stmt.Exec(
			run.RunID, rec.ProductID, rec.ProductName, string(rec.Category), string(rec.Source),
			rec.CurrentPrice, rec.RecommendedPrice, st.Avg, st.Median, st.StdDev, st.Min, st.Max, st.Count,
			rec.ProfitCurrent, rec.ProfitRecommended,
		); err != nil {
			return fmt.Errorf("insert recommendation %s: %w", rec.ProductName, err)
		}
	}
	return tx.Commit()
}

// PriceHistory returns the recommended prices of a product, oldest first.
func (r *SQLiteRecorder) PriceHistory(productID string) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT rec.recommended_price
		FROM recommendations rec JOIN pricing_runs run ON run.run_id = rec.run_id
		WHERE rec.product_id = ?
		ORDER BY run.started_at, rec.id`, productID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
