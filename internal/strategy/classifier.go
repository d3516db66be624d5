package strategy

import (
	"strings"

	"PriceSentinel/internal/model"
)

// CategoryRule maps a category to the keywords that identify it in a product name.
type CategoryRule struct {
	Category model.Category
	Keywords []string
}

// DefaultCategory is used for product names no rule matches.
const DefaultCategory = model.CategoryOtherScarves

// DefaultRules is the reference keyword table. Order matters: "premium shawl"
// must be tested before the generic "shawl".
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{model.CategorySunglasses, []string{"sunglasses"}},
		{model.CategoryBottles, []string{"bottle"}},
		{model.CategoryPhoneAccessories, []string{"phone"}},
		{model.CategoryNotebook, []string{"notebook"}},
		{model.CategoryLunchbox, []string{"lunchbox"}},
		{model.CategoryPremiumShawls, []string{"premium shawl"}},
		{model.CategoryEriSilkShawls, []string{"eri silk"}},
		{model.CategoryCottonScarf, []string{"cotton scarf"}},
		{model.CategoryOtherScarves, []string{"stole", "shawl", "scarf"}},
	}
}

// Classifier assigns categories by ordered, case-insensitive substring matching.
type Classifier struct {
	rules    []CategoryRule
	fallback model.Category
}

// NewClassifier copies the rules and lowercases their keywords.
// An empty fallback resolves to DefaultCategory.
func NewClassifier(rules []CategoryRule, fallback model.Category) *Classifier {
	if fallback == "" {
		fallback = DefaultCategory
	}
	c := &Classifier{rules: make([]CategoryRule, 0, len(rules)), fallback: fallback}
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.rules = append(c.rules, CategoryRule{Category: r.Category, Keywords: kws})
	}
	return c
}

// Classify returns the first category with a keyword contained in name.
func (c *Classifier) Classify(name string) model.Category {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return c.fallback
}
