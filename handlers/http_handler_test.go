package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/giygas/magistral-api/entities"
)

// TestRespondWithJSON tests JSON response formatting
func TestRespondWithJSON(t *testing.T) {
	h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())

	tests := []struct {
		name     string
		code     int
		payload  any
		expected string
	}{
		{"map", http.StatusOK, map[string]string{"a": "b"}, `{"a":"b"}`},
		{"money", http.StatusCreated, map[string]entities.Money{"total": 80}, `{"total":80.00}`},
		{"unmarshalable", http.StatusOK, make(chan int), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.RespondWithJSON(rr, tt.code, tt.payload)

			if tt.expected == "" {
				if rr.Code != http.StatusInternalServerError {
					t.Errorf("Expected 500 for unmarshalable payload, got %d", rr.Code)
				}
				return
			}
			if rr.Code != tt.code {
				t.Errorf("Expected status %d, got %d", tt.code, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Errorf("Unexpected content type %q", ct)
			}
			if rr.Body.String() != tt.expected {
				t.Errorf("Expected body %s, got %s", tt.expected, rr.Body.String())
			}
		})
	}
}

func TestRespondWithError(t *testing.T) {
	h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())

	rr := httptest.NewRecorder()
	h.RespondWithError(rr, http.StatusBadRequest, "Invalid JSON body")

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != "Bad Request" || body["message"] != "Invalid JSON body" || body["code"] != float64(400) {
		t.Errorf("Unexpected error body %v", body)
	}
}

func TestCreateRecommendation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		recommenderErr error
		inputErr       error
		expectedStatus int
		expectedInBody string
		expectCall     bool
	}{
		{
			name:           "success",
			body:           `{"symptoms": "  febre alta  "}`,
			expectedStatus: http.StatusOK,
			expectedInBody: `"PARACETAMOL"`,
			expectCall:     true,
		},
		{
			name:           "with quote",
			body:           `{"symptoms": "febre", "include_quote": true}`,
			expectedStatus: http.StatusOK,
			expectedInBody: `"formatted":"R$ 27.50"`,
			expectCall:     true,
		},
		{
			name:           "invalid json",
			body:           `{"symptoms":`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "Invalid JSON body",
		},
		{
			name:           "missing symptoms",
			body:           `{"top_k": 3}`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "Symptoms is required",
		},
		{
			name:           "top k out of range",
			body:           `{"symptoms": "febre", "top_k": 50}`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "between 0 and 20",
		},
		{
			name:           "rejected input",
			body:           `{"symptoms": "febre; rm -rf"}`,
			inputErr:       errors.New("input contains invalid characters"),
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "invalid characters",
		},
		{
			name: "corpus limitation",
			body: `{"symptoms": "pontada no peito"}`,
			recommenderErr: &entities.RecommendationError{
				Kind:        entities.ErrorKindCorpusLimitation,
				Message:     "Não foi possível encontrar medicamentos adequados",
				Suggestions: []string{"Tente descrever os sintomas de forma diferente"},
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedInBody: `"error_kind":"CorpusLimitation"`,
			expectCall:     true,
		},
		{
			name:           "unresolvable name",
			body:           `{"symptoms": "febre"}`,
			recommenderErr: &entities.RecommendationError{Kind: entities.ErrorKindUnresolvableName, FailedNames: []string{"Analgésico"}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedInBody: `"failed_names":["Analgésico"]`,
			expectCall:     true,
		},
		{
			name:           "malformed model output",
			body:           `{"symptoms": "febre"}`,
			recommenderErr: &entities.RecommendationError{Kind: entities.ErrorKindMalformedResponse, Details: "invalid character"},
			expectedStatus: http.StatusBadGateway,
			expectedInBody: `"details":"invalid character"`,
			expectCall:     true,
		},
		{
			name:           "upstream unavailable",
			body:           `{"symptoms": "febre"}`,
			recommenderErr: fmt.Errorf("wrapped: %w", &entities.RecommendationError{Kind: entities.ErrorKindUpstreamUnavailable}),
			expectedStatus: http.StatusBadGateway,
			expectedInBody: "UpstreamUnavailable",
			expectCall:     true,
		},
		{
			name:           "unexpected error",
			body:           `{"symptoms": "febre"}`,
			recommenderErr: errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedInBody: "Failed to generate recommendation",
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommender := NewMockRecommenderBuilder().WithError(tt.recommenderErr).Build()
			h := newTestHandler(recommender, tt.inputErr, NewMockHealthCheckerBuilder().Build())

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(tt.body))
			h.CreateRecommendation(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.expectedInBody) {
				t.Errorf("Expected body to contain %s, got %s", tt.expectedInBody, rr.Body.String())
			}
			if (recommender.calls == 1) != tt.expectCall {
				t.Errorf("Expected recommender call %v, got %d calls", tt.expectCall, recommender.calls)
			}
		})
	}
}

func TestCreateRecommendationPassesTrimmedInput(t *testing.T) {
	recommender := NewMockRecommenderBuilder().Build()
	h := newTestHandler(recommender, nil, NewMockHealthCheckerBuilder().Build())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(`{"symptoms": "  dor de cabeça ", "top_k": 7}`))
	h.CreateRecommendation(rr, req)

	if recommender.lastSymptoms != "dor de cabeça" {
		t.Errorf("Expected trimmed symptoms, got %q", recommender.lastSymptoms)
	}
	if recommender.lastTopK != 7 {
		t.Errorf("Expected top_k 7, got %d", recommender.lastTopK)
	}

	var rec entities.Recommendation
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Failed to decode recommendation: %v", err)
	}
	if rec.Quote != nil {
		t.Error("Expected no quote unless requested")
	}
}

func TestOversizedBodyReturns413(t *testing.T) {
	h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())
	body := `{"symptoms": "` + strings.Repeat("a", 256) + `"}`

	tests := []struct {
		name  string
		path  string
		serve http.HandlerFunc
	}{
		{"recommendation", "/v1/recommendations", h.CreateRecommendation},
		{"quote", "/v1/quotes", h.CreateQuote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(body))
			req.Body = http.MaxBytesReader(rr, req.Body, 64)
			tt.serve(rr, req)

			if rr.Code != http.StatusRequestEntityTooLarge {
				t.Errorf("Expected status 413, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "Maximum allowed size is 64 bytes") {
				t.Errorf("Expected size limit in message, got %s", rr.Body.String())
			}
		})
	}
}

func TestCreateQuote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedInBody string
	}{
		{
			name:           "valid formula",
			body:           `{"formula": {"insumos": [{"name": "NISTATINA", "dose": "1g"}], "total_quantity": "30 cápsulas"}}`,
			expectedStatus: http.StatusOK,
			expectedInBody: `"formatted":"R$ 80.00"`,
		},
		{
			name:           "breakdown lines",
			body:           `{"formula": {"insumos": [{"name": "PARACETAMOL", "dose": "500mg"}], "total_quantity": "30"}}`,
			expectedStatus: http.StatusOK,
			expectedInBody: `"ingredients_cost":7.50`,
		},
		{
			name:           "no insumos",
			body:           `{"formula": {"insumos": []}}`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "Insumos",
		},
		{
			name:           "missing formula",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "is required",
		},
		{
			name:           "insumo without name",
			body:           `{"formula": {"insumos": [{"dose": "1g"}]}}`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "Name is required",
		},
		{
			name:           "invalid json",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedInBody: "Invalid JSON body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(tt.body))
			h.CreateQuote(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.expectedStatus, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.expectedInBody) {
				t.Errorf("Expected body to contain %s, got %s", tt.expectedInBody, rr.Body.String())
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		httpStatus int
	}{
		{"healthy", "healthy", http.StatusOK},
		{"degraded", "degraded", http.StatusOK},
		{"unhealthy", "unhealthy", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewMockHealthCheckerBuilder().WithStatus(tt.status, tt.httpStatus).Build()
			h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, checker)

			rr := httptest.NewRecorder()
			h.HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tt.httpStatus {
				t.Errorf("Expected status %d, got %d", tt.httpStatus, rr.Code)
			}

			var body HealthResponseImpl
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode health response: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, body.Status)
			}
			if body.Data["monographs"] != float64(42) {
				t.Errorf("Expected monographs 42, got %v", body.Data["monographs"])
			}
			if body.System["goroutines"] == nil {
				t.Error("Expected goroutine count in system section")
			}
		})
	}
}

func TestFormatUptimeHuman(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{5, "5s"},
		{65, "1m 5s"},
		{3600, "1h 0m 0s"},
		{90061, "1d 1h 1m 1s"},
	}

	for _, tt := range tests {
		d := secondsToDuration(tt.seconds)
		if got := formatUptimeHuman(d); got != tt.expected {
			t.Errorf("formatUptimeHuman(%ds) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}
