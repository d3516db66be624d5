package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"PriceSentinel/internal/model"
)

// Header is the column layout of the recommendation file.
var Header = []string{
	"Product Name",
	"Product ID",
	"Recommended Price",
	"Category",
	"Avg Competitor Price",
	"Min Competitor Price",
	"Max Competitor Price",
	"Median Competitor Price",
	"Std Competitor Price",
	"Competitor Count",
	"Profit Current",
	"Profit Recommended",
	"Profit Delta",
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Row renders one recommendation in Header order.
func Row(r model.Recommendation) []string {
	return []string{
		r.ProductName,
		r.ProductID,
		money(r.RecommendedPrice),
		string(r.Category),
		money(r.Stats.Avg),
		money(r.Stats.Min),
		money(r.Stats.Max),
		money(r.Stats.Median),
		money(r.Stats.StdDev),
		strconv.Itoa(r.Stats.Count),
		money(r.ProfitCurrent),
		money(r.ProfitRecommended),
		money(r.ProfitDelta()),
	}
}

// Write renders the recommendations as CSV.
func Write(w io.Writer, recs []model.Recommendation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range recs {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("write row %s: %w", r.ProductName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the recommendation CSV, creating parent directories as needed.
func WriteFile(path string, recs []model.Recommendation) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SummaryLines is the human-readable outcome of a run.
func SummaryLines(s *model.RunSummary) []string {
	return []string{
		fmt.Sprintf("Saved %d recommendations to %s", len(s.Recommendations), s.OutputPath),
		fmt.Sprintf("Total estimated profit now: %s -> %s (delta %s)",
			money(s.ProfitBefore), money(s.ProfitAfter), money(s.ProfitDelta())),
	}
}
