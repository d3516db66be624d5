package advisor

import (
	"context"
	"fmt"
)

// StaticAdvisor returns a fixed answer. Useful for tests and offline runs.
type StaticAdvisor struct {
	Provider string
	Price    float64
	Err      error
	Prompts  []string
}

func (s *StaticAdvisor) Name() string {
	if s.Provider == "" {
		return "static"
	}
	return s.Provider
}

func (s *StaticAdvisor) Suggest(_ context.Context, prompt string) (Suggestion, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", ErrUnavailable, s.Err)
	}
	return Suggestion{Price: s.Price, Provider: s.Name()}, nil
}
