package provider

import "context"

// Request captures one normalized generation call. Role carries the
// requesting agent's role label so adapters and mocks can specialize output.
type Request struct {
	Prompt      string  `json:"prompt"`
	Role        string  `json:"role"`
	MaxTokens   int64   `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Response is the normalized generator output. TokenCount and CostEstimate
// are optional; zero values mean the backend did not report them.
type Response struct {
	Text         string  `json:"text"`
	TokenCount   int     `json:"token_count,omitempty"`
	CostEstimate float64 `json:"cost_estimate,omitempty"`
}

// Generator is the minimal interface strategies use to obtain agent
// responses. Implementations return *core.ProviderError on failure; callers
// must supply a deterministic fallback when that happens.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)

	// Name identifies the backing provider ("anthropic", "openai", "mock").
	Name() string
}
