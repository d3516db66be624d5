package advisor

import (
	"fmt"
	"log"
	"time"
)

// Known provider names.
const (
	ProviderMistral = "mistral"
	ProviderGroq    = "groq"
	ProviderGemini  = "gemini"
)

// DefaultOrder is the reference provider priority.
var DefaultOrder = []string{ProviderMistral, ProviderGroq, ProviderGemini}

// ProviderConfig configures a single advisory provider.
type ProviderConfig struct {
	Name    string
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Proxy   string
}

// New creates a provider by name.
func New(cfg ProviderConfig) (Advisor, error) {
	switch cfg.Name {
	case ProviderMistral:
		return NewMistralAdvisor(cfg), nil
	case ProviderGroq:
		return NewGroqAdvisor(cfg), nil
	case ProviderGemini:
		return NewGeminiAdvisor(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported advisory provider: %s", cfg.Name)
	}
}

// BuildChain creates a chain in the given order. Providers without an API key are
// left out since they could only ever report unavailable.
func BuildChain(cfgs []ProviderConfig) (*Chain, error) {
	var advisors []Advisor
	for _, cfg := range cfgs {
		if cfg.APIKey == "" {
			log.Printf("[INFO] advisory provider %s has no api key, skipping", cfg.Name)
			continue
		}
		a, err := New(cfg)
		if err != nil {
			return nil, err
		}
		advisors = append(advisors, a)
	}
	return NewChain(advisors...), nil
}
