package strategy

import "PriceSentinel/internal/model"

// DefaultPolicy applies to categories missing from the policy table.
var DefaultPolicy = model.CategoryPolicy{Margin: 0.15, Elasticity: 1.2, MaxMarkup: 1.8}

// DefaultPolicies is the reference policy table.
func DefaultPolicies() map[model.Category]model.CategoryPolicy {
	return map[model.Category]model.CategoryPolicy{
		model.CategorySunglasses:       {Margin: 0.15, Elasticity: 1.3, MaxMarkup: 1.8},
		model.CategoryBottles:          {Margin: 0.10, Elasticity: 1.1, MaxMarkup: 1.6},
		model.CategoryPhoneAccessories: {Margin: 0.10, Elasticity: 1.2, MaxMarkup: 1.5},
		model.CategoryNotebook:         {Margin: 0.10, Elasticity: 1.0, MaxMarkup: 1.5},
		model.CategoryLunchbox:         {Margin: 0.10, Elasticity: 1.0, MaxMarkup: 1.6},
		model.CategoryPremiumShawls:    {Margin: 0.30, Elasticity: 0.8, MaxMarkup: 2.0},
		model.CategoryEriSilkShawls:    {Margin: 0.20, Elasticity: 0.9, MaxMarkup: 1.9},
		model.CategoryCottonScarf:      {Margin: 0.15, Elasticity: 1.1, MaxMarkup: 1.7},
		model.CategoryOtherScarves:     {Margin: 0.15, Elasticity: 1.1, MaxMarkup: 1.7},
		model.CategoryCushionCovers:    {Margin: 0.20, Elasticity: 1.0, MaxMarkup: 1.6},
		model.CategoryCoasters:         {Margin: 0.15, Elasticity: 1.0, MaxMarkup: 1.6},
		model.CategoryTowels:           {Margin: 0.15, Elasticity: 1.0, MaxMarkup: 1.5},
	}
}

// PolicyTable is an immutable lookup of category policies.
type PolicyTable struct {
	policies map[model.Category]model.CategoryPolicy
	fallback model.CategoryPolicy
}

// NewPolicyTable copies policies. A zero fallback resolves to DefaultPolicy.
func NewPolicyTable(policies map[model.Category]model.CategoryPolicy, fallback model.CategoryPolicy) *PolicyTable {
	if fallback == (model.CategoryPolicy{}) {
		fallback = DefaultPolicy
	}
	t := &PolicyTable{policies: make(map[model.Category]model.CategoryPolicy, len(policies)), fallback: fallback}
	for k, v := range policies {
		t.policies[k] = v
	}
	return t
}

// Resolve returns the policy for a category, or the fallback policy.
func (t *PolicyTable) Resolve(c model.Category) model.CategoryPolicy {
	if p, ok := t.policies[c]; ok {
		return p
	}
	return t.fallback
}
