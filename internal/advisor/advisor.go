package advisor

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable wraps every advisory failure: missing credentials, transport
// errors, bad status codes and responses without a usable number.
var ErrUnavailable = errors.New("advisory price unavailable")

// Suggestion is a price returned by an advisory provider.
type Suggestion struct {
	Price    float64
	Provider string
}

// Advisor suggests a price for a natural-language prompt.
type Advisor interface {
	Suggest(ctx context.Context, prompt string) (Suggestion, error)
	Name() string
}

// Chain tries advisors in priority order, one attempt each, and returns the first success.
// An empty chain is valid and always unavailable.
type Chain struct {
	advisors []Advisor
}

// NewChain creates a chain, dropping nil advisors.
func NewChain(advisors ...Advisor) *Chain {
	c := &Chain{}
	for _, a := range advisors {
		if a != nil {
			c.advisors = append(c.advisors, a)
		}
	}
	return c
}

func (c *Chain) Name() string { return "chain" }

// Len returns the number of registered advisors.
func (c *Chain) Len() int { return len(c.advisors) }

func (c *Chain) Suggest(ctx context.Context, prompt string) (Suggestion, error) {
	if len(c.advisors) == 0 {
		return Suggestion{}, fmt.Errorf("%w: no providers configured", ErrUnavailable)
	}
	var errs []error
	for _, a := range c.advisors {
		s, err := a.Suggest(ctx, prompt)
		if err == nil {
			return s, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
	}
	return Suggestion{}, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
