package notifier

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"PriceSentinel/internal/model"
)

// DefaultTopChanges is how many price changes a run report lists.
const DefaultTopChanges = 5

func money(v float64) string {
	return "€" + decimal.NewFromFloat(v).StringFixed(2)
}

func signedMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-€" + d.Abs().StringFixed(2)
	}
	return "+€" + d.StringFixed(2)
}

// FormatRunSummary formats a pricing run into a Telegram message listing the
// largest price moves first.
func FormatRunSummary(s *model.RunSummary, top int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🏷 <b>PriceSentinel run</b> | %s\n\n", s.FinishedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Products priced: %d\n", len(s.Recommendations)))
	if len(s.Skipped) > 0 {
		b.WriteString(fmt.Sprintf("Skipped (no catalog entry): %d\n", len(s.Skipped)))
	}
	b.WriteString(fmt.Sprintf("Estimated profit: %s → %s (%s)\n",
		money(s.ProfitBefore), money(s.ProfitAfter), signedMoney(s.ProfitDelta())))

	changes := TopChanges(s.Recommendations, top)
	if len(changes) > 0 {
		b.WriteString("\n📈 <b>Largest price changes:</b>\n")
		for _, r := range changes {
			b.WriteString(fmt.Sprintf("  %s: %s → %s [%s]\n",
				html.EscapeString(r.ProductName), money(r.CurrentPrice), money(r.RecommendedPrice), r.Source))
		}
	}

	if s.OutputPath != "" {
		b.WriteString(fmt.Sprintf("\nSaved to %s", html.EscapeString(s.OutputPath)))
	}
	return b.String()
}

// TopChanges returns up to n recommendations ordered by absolute price move,
// largest first. Unchanged prices are left out.
func TopChanges(recs []model.Recommendation, n int) []model.Recommendation {
	moved := make([]model.Recommendation, 0, len(recs))
	for _, r := range recs {
		if math.Abs(r.RecommendedPrice-r.CurrentPrice) >= 0.005 {
			moved = append(moved, r)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool {
		return math.Abs(moved[i].RecommendedPrice-moved[i].CurrentPrice) >
			math.Abs(moved[j].RecommendedPrice-moved[j].CurrentPrice)
	})
	if n >= 0 && len(moved) > n {
		moved = moved[:n]
	}
	return moved
}

// FormatRunFailure formats a failed run.
func FormatRunFailure(err error) string {
	return fmt.Sprintf("❌ Pricing run failed: %s", html.EscapeString(err.Error()))
}
