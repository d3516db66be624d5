package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceSentinel/internal/config"
	"PriceSentinel/internal/model"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Pricing.PriceStep = 0.25
	cfg.Pricing.DemandBase = 100
	cfg.Pricing.PriceCeiling = 1000
	return cfg
}

func TestBuildClassifier_Defaults(t *testing.T) {
	c := buildClassifier(testConfig())
	assert.Equal(t, model.CategorySunglasses, c.Classify("Classic Wood Sunglasses"))
	assert.Equal(t, model.CategoryOtherScarves, c.Classify("Mystery Widget"))
}

func TestBuildClassifier_Configured(t *testing.T) {
	cfg := testConfig()
	cfg.Pricing.DefaultCategory = "Towels"
	cfg.Pricing.Categories = []config.CategoryConfig{
		{Name: "Candles", Keywords: []string{"Candle"}, CategoryPolicy: model.CategoryPolicy{Margin: 0.2, Elasticity: 1.4, MaxMarkup: 1.5}},
		{Name: "Towels", CategoryPolicy: model.CategoryPolicy{Margin: 0.15, Elasticity: 1.0, MaxMarkup: 1.5}},
	}

	c := buildClassifier(cfg)
	assert.Equal(t, model.Category("Candles"), c.Classify("Soy CANDLE jar"))
	assert.Equal(t, model.CategoryTowels, c.Classify("Classic Wood Sunglasses"))

	p := buildPolicies(cfg)
	assert.Equal(t, 1.4, p.Resolve("Candles").Elasticity)
	// Categories outside the configured table get the built-in default policy.
	assert.Equal(t, 1.2, p.Resolve(model.CategorySunglasses).Elasticity)
}

func TestBuildAdvisor(t *testing.T) {
	cfg := testConfig()
	adv, err := buildAdvisor(cfg)
	require.NoError(t, err)
	assert.Nil(t, adv)

	// A key alone turns advisory on.
	cfg.Advisory.Providers = []config.ProviderConfig{{Name: "groq", APIKey: "k"}}
	adv, err = buildAdvisor(cfg)
	require.NoError(t, err)
	assert.NotNil(t, adv)

	enabled := true
	cfg.Advisory.Enabled = &enabled
	cfg.Advisory.Providers = []config.ProviderConfig{{Name: "mistral"}, {Name: "groq"}}
	adv, err = buildAdvisor(cfg)
	require.NoError(t, err)
	assert.Nil(t, adv, "no provider has a key")

	cfg.Advisory.Providers[1].APIKey = "k"
	adv, err = buildAdvisor(cfg)
	require.NoError(t, err)
	require.NotNil(t, adv)
	assert.Equal(t, "chain", adv.Name())

	cfg.Advisory.Providers = append(cfg.Advisory.Providers, config.ProviderConfig{Name: "openai", APIKey: "k"})
	_, err = buildAdvisor(cfg)
	assert.ErrorContains(t, err, "unsupported advisory provider")
}

func TestBuildEngine(t *testing.T) {
	engine, err := buildEngine(testConfig())
	require.NoError(t, err)

	rec := engine.Recommend(context.Background(),
		model.Product{ID: "SG-01", Name: "Classic Wood Sunglasses", CurrentPrice: 29.99, UnitCost: 10},
		[]model.Observation{{Price: 25}, {Price: 27.5}, {Price: 30}, {Price: 28}, {Price: 150}},
	)
	assert.InDelta(t, 29.49, rec.RecommendedPrice, 1e-9)
	assert.Equal(t, model.SourceOptimizer, rec.Source)
}
