// Package anthropic provides a provider.Generator backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/provider"
)

// Options configures the Anthropic generator (model id, API key, defaults
// applied when a request leaves MaxTokens or Temperature unset).
type Options struct {
	Model       anthropic.Model
	APIKey      string
	MaxTokens   int64
	Temperature float64
}

// Generator wraps the Anthropic Messages API behind provider.Generator.
type Generator struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic generator using the official client.
func New(optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Generator{client: &client, opts: opts}
}

// NewFromClient creates a generator from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Generator{client: client, opts: opts}
}

// Generate implements provider.Generator.
func (g *Generator) Generate(ctx context.Context, req provider.Request) (provider.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.opts.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.opts.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:       g.opts.Model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return provider.Response{}, &core.ProviderError{Provider: g.Name(), Err: err}
	}

	if len(resp.Content) == 0 {
		return provider.Response{}, &core.ProviderError{Provider: g.Name(), Err: fmt.Errorf("empty response content")}
	}

	return provider.Response{
		Text:       resp.Content[0].Text,
		TokenCount: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}, nil
}

// Name implements provider.Generator.
func (g *Generator) Name() string { return "anthropic" }
