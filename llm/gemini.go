package llm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiGenerator creates a Gemini generator. baseURL overrides the API
// endpoint when non-empty.
func NewGeminiGenerator(ctx context.Context, apiKey, baseURL string, opts Options, limiter *rate.Limiter) (*Generator, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	b := &geminiBackend{
		client: client,
		model:  opts.Model,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(opts.Temperature)),
		},
	}
	if opts.MaxTokens > 0 {
		b.config.MaxOutputTokens = int32(opts.MaxTokens)
	}

	return newGenerator("gemini", b, limiter, opts), nil
}

func (b *geminiBackend) call(ctx context.Context, prompt, systemInstruction string) (string, error) {
	cfg := *b.config
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), &cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var out strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part != nil && part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}

	return out.String(), nil
}
