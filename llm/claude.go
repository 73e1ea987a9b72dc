package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

type claudeBackend struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewClaudeGenerator creates a Claude generator. baseURL overrides the API
// endpoint when non-empty. Retries are handled by the Generator, not the SDK.
func NewClaudeGenerator(apiKey, baseURL string, opts Options, limiter *rate.Limiter) *Generator {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	b := &claudeBackend{
		client:      anthropic.NewClient(reqOpts...),
		model:       opts.Model,
		maxTokens:   maxTokens,
		temperature: opts.Temperature,
	}
	return newGenerator("claude", b, limiter, opts)
}

func (b *claudeBackend) call(ctx context.Context, prompt, systemInstruction string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: b.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(b.temperature),
	}
	if systemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemInstruction}}
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
