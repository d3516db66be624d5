package calculator

import "math"

// DefaultDemandBase is the nominal demand at parity with the competitor average.
const DefaultDemandBase = 100.0

// SimulateProfit estimates profit under a constant-elasticity demand curve:
// demand = demandBase * (avgCompetitor/price)^elasticity, profit = demand * (price - unitCost).
// A non-positive price yields zero profit.
func SimulateProfit(price, unitCost, avgCompetitor, demandBase, elasticity float64) float64 {
	if price <= 0 {
		return 0
	}
	demand := demandBase * math.Pow(avgCompetitor/price, elasticity)
	return demand * (price - unitCost)
}
