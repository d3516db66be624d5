package main

import (
	"fmt"
	"log"

	"PriceSentinel/internal/advisor"
	"PriceSentinel/internal/config"
	"PriceSentinel/internal/model"
	"PriceSentinel/internal/strategy"
)

// buildClassifier uses the configured category table, or the built-in one when the
// config lists no categories.
func buildClassifier(cfg *config.Config) *strategy.Classifier {
	fallback := model.Category(cfg.Pricing.DefaultCategory)
	if len(cfg.Pricing.Categories) == 0 {
		return strategy.NewClassifier(strategy.DefaultRules(), fallback)
	}
	rules := make([]strategy.CategoryRule, 0, len(cfg.Pricing.Categories))
	for _, c := range cfg.Pricing.Categories {
		if len(c.Keywords) == 0 {
			continue
		}
		rules = append(rules, strategy.CategoryRule{Category: model.Category(c.Name), Keywords: c.Keywords})
	}
	return strategy.NewClassifier(rules, fallback)
}

func buildPolicies(cfg *config.Config) *strategy.PolicyTable {
	if len(cfg.Pricing.Categories) == 0 {
		return strategy.NewPolicyTable(strategy.DefaultPolicies(), cfg.Pricing.DefaultPolicy)
	}
	policies := make(map[model.Category]model.CategoryPolicy, len(cfg.Pricing.Categories))
	for _, c := range cfg.Pricing.Categories {
		policies[model.Category(c.Name)] = c.CategoryPolicy
	}
	return strategy.NewPolicyTable(policies, cfg.Pricing.DefaultPolicy)
}

// buildAdvisor returns nil when advisory is disabled or no provider has a key, so
// the engine goes straight to the optimizer.
func buildAdvisor(cfg *config.Config) (advisor.Advisor, error) {
	if !cfg.AdvisoryEnabled() {
		log.Println("[INFO] advisory disabled, using optimizer only")
		return nil, nil
	}
	providers := make([]advisor.ProviderConfig, 0, len(cfg.Advisory.Providers))
	for _, p := range cfg.Advisory.Providers {
		providers = append(providers, advisor.ProviderConfig{
			Name:    p.Name,
			APIKey:  p.APIKey,
			Model:   p.Model,
			BaseURL: p.BaseURL,
			Timeout: cfg.AdvisoryTimeout(),
			Proxy:   cfg.Proxy,
		})
	}
	chain, err := advisor.BuildChain(providers)
	if err != nil {
		return nil, fmt.Errorf("build advisory chain: %w", err)
	}
	if chain.Len() == 0 {
		log.Println("[WARN] advisory enabled but no provider has an api key, using optimizer only")
		return nil, nil
	}
	log.Printf("[INFO] advisory chain: %d provider(s)", chain.Len())
	return chain, nil
}

func buildEngine(cfg *config.Config) (*strategy.Engine, error) {
	adv, err := buildAdvisor(cfg)
	if err != nil {
		return nil, err
	}
	return strategy.NewEngine(buildClassifier(cfg), buildPolicies(cfg), adv, strategy.Settings{
		PriceCeiling:     cfg.Pricing.PriceCeiling,
		PriceStep:        cfg.Pricing.PriceStep,
		DemandBase:       cfg.Pricing.DemandBase,
		ProfitElasticity: cfg.Pricing.ProfitElasticity,
	}), nil
}
