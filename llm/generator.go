// Package llm implements the text-generation capability on top of the
// supported model providers. Each provider sits behind the same retrying,
// rate-limited Generator so the pipeline never branches on provider names.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/giygas/magistral-api/config"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
)

var (
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrUnknownProvider is returned by NewGenerator for unsupported providers.
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// Options are the generation parameters shared by every provider.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	MaxAttempts int
	Backoff     time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Backoff <= 0 {
		o.Backoff = DefaultBackoff
	}
	return o
}

// backend performs a single provider call.
type backend interface {
	call(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// Generator wraps a provider backend with pacing and retries.
type Generator struct {
	name     string
	backend  backend
	limiter  *rate.Limiter
	attempts int
	backoff  time.Duration
}

var _ interfaces.Generator = (*Generator)(nil)

func newGenerator(name string, b backend, limiter *rate.Limiter, opts Options) *Generator {
	opts = opts.withDefaults()
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Generator{
		name:     name,
		backend:  b,
		limiter:  limiter,
		attempts: opts.MaxAttempts,
		backoff:  opts.Backoff,
	}
}

// Name returns the provider name.
func (g *Generator) Name() string { return g.name }

// Generate sends prompt to the provider. Transient failures are retried with
// linear backoff until the attempts run out or ctx is done.
func (g *Generator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < g.attempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%s rate limit wait: %w", g.name, err)
		}

		text, err := g.backend.call(ctx, prompt, systemInstruction)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !isRetryable(ctx, err) || attempt == g.attempts-1 {
			break
		}

		wait := time.Duration(attempt+1) * g.backoff
		logging.Warn("Generation attempt failed, retrying",
			"provider", g.name,
			"attempt", attempt+1,
			"wait", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%s generation cancelled: %w", g.name, ctx.Err())
		case <-time.After(wait):
		}
	}

	return "", fmt.Errorf("%s generation failed: %w", g.name, lastErr)
}

func isRetryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return transientStatus(statusErr.Code)
	}
	var claudeErr *anthropic.Error
	if errors.As(err, &claudeErr) {
		return transientStatus(claudeErr.StatusCode)
	}
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return transientStatus(geminiErr.Code)
	}

	return true
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}

// NewLimiter paces provider calls to requestsPerMinute.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst)
}

// NewGenerator builds the generator for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.Config) (*Generator, error) {
	opts := Options{
		Model:       cfg.Model(),
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	}
	limiter := NewLimiter(cfg.LLMRequestsPerMinute)

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, "", opts, limiter)
	case config.ProviderClaude:
		return NewClaudeGenerator(cfg.AnthropicAPIKey, "", opts, limiter), nil
	case config.ProviderGroq:
		return NewGroqGenerator(cfg.GroqAPIKey, cfg.GroqBaseURL, opts, limiter), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.LLMProvider)
	}
}
