package advisor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	mistralEndpoint = "https://api.mistral.ai/v1/chat/completions"
	mistralModel    = "mistral-large-latest"
	groqEndpoint    = "https://api.groq.com/openai/v1/chat/completions"
	groqModel       = "meta-llama/llama-guard-4-12b"
)

// ChatAdvisor talks to an OpenAI-compatible chat completions endpoint.
type ChatAdvisor struct {
	name     string
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewChatAdvisor creates a provider for any OpenAI-compatible endpoint.
func NewChatAdvisor(name string, cfg ProviderConfig) *ChatAdvisor {
	return &ChatAdvisor{
		name:     name,
		endpoint: cfg.BaseURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client:   newHTTPClient(cfg.Timeout, cfg.Proxy),
	}
}

// NewMistralAdvisor creates the Mistral provider.
func NewMistralAdvisor(cfg ProviderConfig) *ChatAdvisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = mistralEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = mistralModel
	}
	return NewChatAdvisor(ProviderMistral, cfg)
}

// NewGroqAdvisor creates the Groq provider.
func NewGroqAdvisor(cfg ProviderConfig) *ChatAdvisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = groqEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = groqModel
	}
	return NewChatAdvisor(ProviderGroq, cfg)
}

func (a *ChatAdvisor) Name() string { return a.name }

func (a *ChatAdvisor) Suggest(ctx context.Context, prompt string) (Suggestion, error) {
	if strings.TrimSpace(a.apiKey) == "" {
		return Suggestion{}, fmt.Errorf("%w: %s api key not set", ErrUnavailable, a.name)
	}

	var resp chatResponse
	err := postJSON(ctx, a.client, a.endpoint,
		map[string]string{"Authorization": "Bearer " + a.apiKey},
		chatRequest{Model: a.model, Messages: []chatMessage{{Role: "user", Content: prompt}}},
		&resp,
	)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %s: %w", ErrUnavailable, a.name, err)
	}
	if len(resp.Choices) == 0 {
		return Suggestion{}, fmt.Errorf("%w: %s: empty choices", ErrUnavailable, a.name)
	}

	price, err := ExtractPrice(resp.Choices[0].Message.Content)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%s: %w", a.name, err)
	}
	return Suggestion{Price: price, Provider: a.name}, nil
}
