package strategy

import (
	"fmt"
	"strings"

	"PriceSentinel/internal/model"
)

// BuildPrompt renders the advisory question for a product and its cleaned sample.
func BuildPrompt(p model.Product, category model.Category, policy model.CategoryPolicy, prices []float64, st model.PriceStats) string {
	quoted := make([]string, len(prices))
	for i, v := range prices {
		quoted[i] = fmt.Sprintf("%.2f", v)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Product: %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Category: %s\n", category))
	b.WriteString(fmt.Sprintf("Competitor prices: %s\n", strings.Join(quoted, ", ")))
	b.WriteString(fmt.Sprintf("Average price: %.2f\n", st.Avg))
	b.WriteString(fmt.Sprintf("Median price: %.2f\n", st.Median))
	b.WriteString(fmt.Sprintf("Std Dev: %.2f\n", st.StdDev))
	b.WriteString(fmt.Sprintf("Min price: %.2f\n", st.Min))
	b.WriteString(fmt.Sprintf("Max price: %.2f\n", st.Max))
	b.WriteString(fmt.Sprintf("Current price: %.2f\n", p.CurrentPrice))
	b.WriteString(fmt.Sprintf("Unit cost: %.2f\n", p.UnitCost))
	b.WriteString(fmt.Sprintf("Required margin: %.0f%%\n", policy.Margin*100))
	b.WriteString("Recommend a competitive selling price that maximizes profit. Only respond with the number.")
	return b.String()
}
