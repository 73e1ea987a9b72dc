package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giygas/magistral-api/config"
)

// MockBackend returns the queued results in order, repeating the last one.
type MockBackend struct {
	texts []string
	errs  []error
	calls int
}

func (m *MockBackend) call(ctx context.Context, prompt, systemInstruction string) (string, error) {
	i := m.calls
	if i >= len(m.texts) {
		i = len(m.texts) - 1
	}
	m.calls++
	return m.texts[i], m.errs[i]
}

func fastOptions() Options {
	return Options{Model: "test-model", MaxAttempts: 3, Backoff: time.Millisecond}
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	backend := &MockBackend{
		texts: []string{"", "", "ok"},
		errs:  []error{&StatusError{Code: 503}, &StatusError{Code: 429}, nil},
	}
	gen := newGenerator("mock", backend, nil, fastOptions())

	out, err := gen.Generate(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, backend.calls)
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	backend := &MockBackend{texts: []string{""}, errs: []error{&StatusError{Code: 400, Body: "bad request"}}}
	gen := newGenerator("mock", backend, nil, fastOptions())

	_, err := gen.Generate(context.Background(), "prompt", "")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.Code)
	assert.Equal(t, 1, backend.calls)
	assert.Contains(t, err.Error(), "mock generation failed")
}

func TestGenerateRejectsEmptyOutput(t *testing.T) {
	backend := &MockBackend{texts: []string{"   \n"}, errs: []error{nil}}
	gen := newGenerator("mock", backend, nil, fastOptions())

	_, err := gen.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 3, backend.calls)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	backend := &MockBackend{texts: []string{""}, errs: []error{errors.New("connection reset")}}
	opts := fastOptions()
	opts.Backoff = time.Hour
	gen := newGenerator("mock", backend, nil, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gen.Generate(ctx, "prompt", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, backend.calls)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, 3, NewLimiter(30).Burst())
	assert.Equal(t, 1, NewLimiter(5).Burst())
	assert.InDelta(t, 0.5, float64(NewLimiter(30).Limit()), 1e-9)
}

func TestGroqGenerator(t *testing.T) {
	var received chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"formula\":{}}"}}]}`))
	}))
	defer server.Close()

	opts := fastOptions()
	opts.Temperature = 0.1
	opts.MaxTokens = 512
	gen := NewGroqGenerator("groq-key", server.URL+"/openai/v1/", opts, nil)

	out, err := gen.Generate(context.Background(), "user prompt", "system prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"formula":{}}`, out)
	assert.Equal(t, "groq", gen.Name())

	assert.Equal(t, "test-model", received.Model)
	assert.Equal(t, 512, received.MaxTokens)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "user prompt", received.Messages[1].Content)
}

func TestGroqGeneratorRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	gen := NewGroqGenerator("k", server.URL, fastOptions(), nil)
	out, err := gen.Generate(context.Background(), "p", "")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGroqGeneratorNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	opts := fastOptions()
	opts.MaxAttempts = 1
	gen := NewGroqGenerator("k", server.URL, opts, nil)

	_, err := gen.Generate(context.Background(), "p", "")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClaudeGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "claude-key", r.Header.Get("X-Api-Key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])
		assert.Contains(t, body, "system")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "test-model",
			"content": [{"type": "text", "text": "{\"erro\":"}, {"type": "text", "text": "\"x\"}"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 6}
		}`))
	}))
	defer server.Close()

	gen := NewClaudeGenerator("claude-key", server.URL, fastOptions(), nil)
	out, err := gen.Generate(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, `{"erro":"x"}`, out)
	assert.Equal(t, "claude", gen.Name())
}

func TestGeminiGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		assert.Contains(t, r.URL.Path, "test-model")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"gerado"}]}}]}`))
	}))
	defer server.Close()

	gen, err := NewGeminiGenerator(context.Background(), "gemini-key", server.URL, fastOptions(), nil)
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, "gerado", out)
	assert.Equal(t, "gemini", gen.Name())
}

func TestNewGeneratorSelectsProvider(t *testing.T) {
	tests := []struct {
		provider string
		expected string
	}{
		{config.ProviderClaude, "claude"},
		{config.ProviderGroq, "groq"},
		{config.ProviderGemini, "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.Config{
				LLMProvider:          tt.provider,
				GeminiAPIKey:         "g",
				AnthropicAPIKey:      "a",
				GroqAPIKey:           "q",
				GroqBaseURL:          "https://api.groq.com/openai/v1",
				LLMRequestsPerMinute: 30,
			}
			gen, err := NewGenerator(context.Background(), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, gen.Name())
		})
	}

	_, err := NewGenerator(context.Background(), &config.Config{LLMProvider: "openai"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
