package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics)
	router.Post("/v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	before := testutil.ToFloat64(HTTPRequestTotals.WithLabelValues(http.MethodPost, "/v1/recommendations", "422"))

	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	after := testutil.ToFloat64(HTTPRequestTotals.WithLabelValues(http.MethodPost, "/v1/recommendations", "422"))
	if after != before+1 {
		t.Errorf("Expected counter to increase by 1, got %v -> %v", before, after)
	}
	if testutil.ToFloat64(HTTPRequestInFlight) != 0 {
		t.Error("Expected no in-flight requests after completion")
	}
}

func TestRoutePatternWithoutChiContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(req); got != "unmatched" {
		t.Errorf("Expected unmatched, got %s", got)
	}
}

func TestRecordOutcome(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("CorpusLimitation"))
	RecordOutcome("CorpusLimitation")
	after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("CorpusLimitation"))
	if after != before+1 {
		t.Errorf("Expected outcome counter to increase by 1, got %v -> %v", before, after)
	}
}
