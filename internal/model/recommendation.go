package model

import "time"

// PriceSource tells which path produced a recommended price.
type PriceSource string

const (
	SourceFloor     PriceSource = "floor"
	SourceOptimizer PriceSource = "optimizer"
)

// AdvisorSource builds the source label for a price returned by an advisory provider.
func AdvisorSource(provider string) PriceSource {
	return PriceSource("advisor:" + provider)
}

// PriceStats describes a cleaned competitor sample.
type PriceStats struct {
	Avg    float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Count  int
}

// Recommendation is the final output of the pricing engine for one product.
type Recommendation struct {
	ProductID         string
	ProductName       string
	Category          Category
	CurrentPrice      float64
	RecommendedPrice  float64
	Source            PriceSource
	Stats             PriceStats
	ProfitCurrent     float64
	ProfitRecommended float64
}

// ProfitDelta is the estimated profit change of switching to the recommended price.
func (r Recommendation) ProfitDelta() float64 {
	return r.ProfitRecommended - r.ProfitCurrent
}

// RunSummary is the result of one batch pass over the catalog.
type RunSummary struct {
	RunID           string
	StartedAt       time.Time
	FinishedAt      time.Time
	Recommendations []Recommendation
	Skipped         []string
	ProfitBefore    float64
	ProfitAfter     float64
	OutputPath      string
}

// ProfitDelta is the aggregate profit change across the run.
func (s *RunSummary) ProfitDelta() float64 {
	return s.ProfitAfter - s.ProfitBefore
}
