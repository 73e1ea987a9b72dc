package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// StatusError is a non-2xx answer from an HTTP provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// groqBackend speaks the OpenAI-compatible chat completions protocol.
type groqBackend struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float64
	maxTokens   int
	httpc       *http.Client
}

// NewGroqGenerator creates a generator for an OpenAI-compatible endpoint
// rooted at baseURL (for Groq, https://api.groq.com/openai/v1).
func NewGroqGenerator(apiKey, baseURL string, opts Options, limiter *rate.Limiter) *Generator {
	b := &groqBackend{
		apiKey:      apiKey,
		endpoint:    strings.TrimRight(baseURL, "/") + "/chat/completions",
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		httpc:       &http.Client{Timeout: 90 * time.Second},
	}
	return newGenerator("groq", b, limiter, opts)
}

func (b *groqBackend) call(ctx context.Context, prompt, systemInstruction string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemInstruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	payload, err := json.Marshal(chatRequest{
		Model:       b.model,
		Messages:    messages,
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}
