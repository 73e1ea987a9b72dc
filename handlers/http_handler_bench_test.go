package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// BenchmarkCreateQuote benchmarks the pricing endpoint
func BenchmarkCreateQuote(b *testing.B) {
	h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())
	body := `{"formula": {"insumos": [{"name": "PARACETAMOL", "dose": "500mg"}, {"name": "CAFEÍNA", "dose": "65mg"}], "total_quantity": "60 cápsulas"}}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(body))
		h.CreateQuote(rr, req)
	}
}

// BenchmarkCreateRecommendation benchmarks request decoding and response encoding
func BenchmarkCreateRecommendation(b *testing.B) {
	h := newTestHandler(NewMockRecommenderBuilder().Build(), nil, NewMockHealthCheckerBuilder().Build())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(`{"symptoms": "febre alta", "include_quote": true}`))
		h.CreateRecommendation(rr, req)
	}
}
