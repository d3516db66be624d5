package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPriceStep is the granularity of the price sweep.
const DefaultPriceStep = 0.25

// OptimizerParams are the per-category inputs of the price search.
type OptimizerParams struct {
	Margin     float64
	Elasticity float64
	MaxMarkup  float64
	PriceStep  float64 // defaults to DefaultPriceStep
	DemandBase float64 // defaults to DefaultDemandBase
}

func (p OptimizerParams) withDefaults() OptimizerParams {
	if p.PriceStep <= 0 {
		p.PriceStep = DefaultPriceStep
	}
	if p.DemandBase <= 0 {
		p.DemandBase = DefaultDemandBase
	}
	return p
}

// FloorPrice is the cost-plus floor every recommendation must respect.
func FloorPrice(unitCost, margin float64) float64 {
	return unitCost * (1 + margin)
}

// SearchWindow returns the bounded price range swept by OptimizePrice.
// When the ceilings fall below the floor, high is widened to low*1.1.
func SearchWindow(prices []float64, currentPrice, unitCost, margin, maxMarkup float64) (low, high float64) {
	base := FloorPrice(unitCost, margin)
	avg := stat.Mean(prices, nil)
	minP := floats.Min(prices)
	maxP := floats.Max(prices)

	low = math.Max(base, math.Max(minP*0.9, currentPrice*0.9))
	high = math.Min(
		math.Min(avg*maxMarkup, maxP*1.2),
		math.Min(currentPrice*maxMarkup, base*maxMarkup),
	)
	if high < low {
		high = low * 1.1
	}
	return low, high
}

// OptimizePrice sweeps the search window and returns the rounded price with the
// highest simulated profit. Ties keep the lowest candidate. With no competitor
// prices it returns the rounded maximum of the floor and the current price.
func OptimizePrice(prices []float64, currentPrice, unitCost float64, params OptimizerParams) float64 {
	params = params.withDefaults()
	base := FloorPrice(unitCost, params.Margin)
	if len(prices) == 0 {
		return RoundPrice(math.Max(base, currentPrice))
	}

	avg := stat.Mean(prices, nil)
	low, high := SearchWindow(prices, currentPrice, unitCost, params.Margin, params.MaxMarkup)

	best := base
	bestProfit := math.Inf(-1)
	for i := 0; ; i++ {
		price := low + float64(i)*params.PriceStep
		if price > high {
			break
		}
		profit := SimulateProfit(price, unitCost, avg, params.DemandBase, params.Elasticity)
		if profit > bestProfit {
			bestProfit = profit
			best = price
		}
	}

	return RoundPrice(math.Max(best, base))
}
