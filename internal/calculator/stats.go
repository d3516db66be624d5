package calculator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"PriceSentinel/internal/model"
)

// Describe computes descriptive statistics of a cleaned sample.
// An empty sample is described entirely by the fallback price with a zero count.
func Describe(prices []float64, fallback float64) model.PriceStats {
	if len(prices) == 0 {
		return model.PriceStats{
			Avg:    fallback,
			Median: fallback,
			Min:    fallback,
			Max:    fallback,
		}
	}
	st := model.PriceStats{
		Avg:    stat.Mean(prices, nil),
		Median: quantileSorted(sortedCopy(prices), 0.5),
		Min:    floats.Min(prices),
		Max:    floats.Max(prices),
		Count:  len(prices),
	}
	// Sample standard deviation is undefined for a single value.
	if len(prices) > 1 {
		st.StdDev = stat.StdDev(prices, nil)
	}
	return st
}
