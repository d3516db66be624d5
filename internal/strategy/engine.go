package strategy

import (
	"context"
	"log"
	"math"

	"PriceSentinel/internal/advisor"
	"PriceSentinel/internal/calculator"
	"PriceSentinel/internal/model"
)

// Settings are the engine-wide numeric knobs.
type Settings struct {
	PriceCeiling     float64
	PriceStep        float64
	DemandBase       float64
	// ProfitElasticity is used for the reported profit figures only; the optimizer
	// uses the category elasticity.
	ProfitElasticity float64
}

// Engine turns a product and its competitor observations into a recommendation.
type Engine struct {
	classifier *Classifier
	policies   *PolicyTable
	advisor    advisor.Advisor
	settings   Settings
}

// NewEngine creates an engine. adv may be nil, in which case the optimizer is always used.
func NewEngine(classifier *Classifier, policies *PolicyTable, adv advisor.Advisor, settings Settings) *Engine {
	if settings.PriceCeiling <= 0 {
		settings.PriceCeiling = calculator.DefaultPriceCeiling
	}
	if settings.PriceStep <= 0 {
		settings.PriceStep = calculator.DefaultPriceStep
	}
	if settings.DemandBase <= 0 {
		settings.DemandBase = calculator.DefaultDemandBase
	}
	if settings.ProfitElasticity <= 0 {
		settings.ProfitElasticity = DefaultPolicy.Elasticity
	}
	return &Engine{classifier: classifier, policies: policies, advisor: adv, settings: settings}
}

// Recommend computes the price recommendation for one product. It never fails:
// advisory errors fall back to the optimizer and an empty sample to the cost-plus floor.
func (e *Engine) Recommend(ctx context.Context, p model.Product, observations []model.Observation) model.Recommendation {
	category := e.classifier.Classify(p.Name)
	policy := e.policies.Resolve(category)

	raw := make([]float64, len(observations))
	for i, o := range observations {
		raw[i] = o.Price
	}
	cleaned := calculator.CleanPrices(raw, e.settings.PriceCeiling)
	stats := calculator.Describe(cleaned, p.CurrentPrice)

	rec := model.Recommendation{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     category,
		CurrentPrice: p.CurrentPrice,
		Stats:        stats,
	}

	var price float64
	if len(cleaned) == 0 {
		// No competitor signal, so no basis for an advisory prompt either.
		price = math.Max(calculator.FloorPrice(p.UnitCost, policy.Margin), p.CurrentPrice)
		rec.Source = model.SourceFloor
	} else {
		price, rec.Source = e.priceFromSample(ctx, p, category, policy, cleaned, stats)
	}
	rec.RecommendedPrice = calculator.RoundPrice(price)

	// stats.Avg is the current price for an empty sample.
	rec.ProfitCurrent = calculator.SimulateProfit(p.CurrentPrice, p.UnitCost, stats.Avg, e.settings.DemandBase, e.settings.ProfitElasticity)
	rec.ProfitRecommended = calculator.SimulateProfit(rec.RecommendedPrice, p.UnitCost, stats.Avg, e.settings.DemandBase, e.settings.ProfitElasticity)
	return rec
}

func (e *Engine) priceFromSample(ctx context.Context, p model.Product, category model.Category, policy model.CategoryPolicy, cleaned []float64, stats model.PriceStats) (float64, model.PriceSource) {
	if e.advisor != nil {
		prompt := BuildPrompt(p, category, policy, cleaned, stats)
		s, err := e.advisor.Suggest(ctx, prompt)
		if err == nil {
			log.Printf("[INFO] %s: advisory price %.2f from %s", p.Name, s.Price, s.Provider)
			return s.Price, model.AdvisorSource(s.Provider)
		}
		log.Printf("[INFO] %s: advisory unavailable, using optimizer: %v", p.Name, err)
	}

	price := calculator.OptimizePrice(cleaned, p.CurrentPrice, p.UnitCost, calculator.OptimizerParams{
		Margin:     policy.Margin,
		Elasticity: policy.Elasticity,
		MaxMarkup:  policy.MaxMarkup,
		PriceStep:  e.settings.PriceStep,
		DemandBase: e.settings.DemandBase,
	})
	return price, model.SourceOptimizer
}
