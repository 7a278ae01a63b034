// Package openai provides a provider.Generator backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/archonhq/archon/core"
	"github.com/archonhq/archon/provider"
)

// Options configures the OpenAI generator. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Generator wraps the OpenAI Chat Completions API behind provider.Generator.
type Generator struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI generator using the official client.
func New(optFns ...func(o *Options)) *Generator {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a generator from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Generator {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
		MaxTokens:   1024,
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Generator{client: client, opts: opts}
}

// costPer1KTokens holds rough combined cost estimates used to annotate
// responses; absent models report no estimate.
var costPer1KTokens = map[string]float64{
	openai.ChatModelGPT4o:     0.01,
	openai.ChatModelGPT4oMini: 0.0006,
	openai.ChatModelGPT4:      0.03,
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

	params := openai.ChatCompletionNewParams{
		Model:               g.opts.Model,
		MaxCompletionTokens: openai.Int(maxTokens),
		Temperature:         openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return provider.Response{}, &core.ProviderError{Provider: g.Name(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return provider.Response{}, &core.ProviderError{Provider: g.Name(), Err: fmt.Errorf("no completion choices returned")}
	}

	tokens := int(resp.Usage.TotalTokens)

	return provider.Response{
		Text:         resp.Choices[0].Message.Content,
		TokenCount:   tokens,
		CostEstimate: float64(tokens) / 1000 * costPer1KTokens[g.opts.Model],
	}, nil
}

// Name implements provider.Generator.
func (g *Generator) Name() string { return "openai" }
