package advisor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1"
	geminiModel   = "gemini-1.5-pro-002"
)

// GeminiAdvisor talks to the Google generateContent API.
type GeminiAdvisor struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiAdvisor creates the Gemini provider.
func NewGeminiAdvisor(cfg ProviderConfig) *GeminiAdvisor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = geminiModel
	}
	return &GeminiAdvisor{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  newHTTPClient(cfg.Timeout, cfg.Proxy),
	}
}

func (g *GeminiAdvisor) Name() string { return ProviderGemini }

func (g *GeminiAdvisor) Suggest(ctx context.Context, prompt string) (Suggestion, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return Suggestion{}, fmt.Errorf("%w: gemini api key not set", ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	var resp geminiResponse
	err := postJSON(ctx, g.client, endpoint, nil,
		geminiRequest{Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}},
		&resp,
	)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: gemini: %w", ErrUnavailable, err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return Suggestion{}, fmt.Errorf("%w: gemini: empty candidates", ErrUnavailable)
	}

	price, err := ExtractPrice(resp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return Suggestion{}, fmt.Errorf("gemini: %w", err)
	}
	return Suggestion{Price: price, Provider: ProviderGemini}, nil
}
