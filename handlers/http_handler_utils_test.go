package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/pricing"
)

// ============================================================================
// MOCKS
// ============================================================================

// MockRecommender returns a canned recommendation or error
type MockRecommender struct {
	recommendation *entities.Recommendation
	err            error
	lastSymptoms   string
	lastTopK       int
	calls          int
}

func (m *MockRecommender) Recommend(ctx context.Context, symptoms string, topK int) (*entities.Recommendation, error) {
	m.calls++
	m.lastSymptoms = symptoms
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	rec := *m.recommendation
	return &rec, nil
}

// MockInputValidator rejects input when err is set
type MockInputValidator struct {
	err error
}

func (m *MockInputValidator) ValidateSymptoms(input string) error {
	return m.err
}

// MockHealthChecker returns fixed health data
type MockHealthChecker struct {
	status     string
	data       map[string]any
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.data, m.httpStatus
}

func (m *MockHealthChecker) CalculateNextUpdate() time.Time {
	return time.Time{}
}

// ============================================================================
// BUILDERS
// ============================================================================

// MockRecommenderBuilder provides fluent interface for building mock recommenders
type MockRecommenderBuilder struct {
	recommender *MockRecommender
}

func NewMockRecommenderBuilder() *MockRecommenderBuilder {
	return &MockRecommenderBuilder{
		recommender: &MockRecommender{recommendation: sampleRecommendation()},
	}
}

func (b *MockRecommenderBuilder) WithError(err error) *MockRecommenderBuilder {
	b.recommender.err = err
	return b
}

func (b *MockRecommenderBuilder) Build() *MockRecommender {
	return b.recommender
}

// MockHealthCheckerBuilder provides fluent interface for building mock health checkers
type MockHealthCheckerBuilder struct {
	checker *MockHealthChecker
}

func NewMockHealthCheckerBuilder() *MockHealthCheckerBuilder {
	return &MockHealthCheckerBuilder{
		checker: &MockHealthChecker{
			status:     "healthy",
			data:       map[string]any{"monographs": 42},
			httpStatus: http.StatusOK,
		},
	}
}

func (b *MockHealthCheckerBuilder) WithStatus(status string, httpStatus int) *MockHealthCheckerBuilder {
	b.checker.status = status
	b.checker.httpStatus = httpStatus
	return b
}

func (b *MockHealthCheckerBuilder) Build() *MockHealthChecker {
	return b.checker
}

// ============================================================================
// TEST DATA
// ============================================================================

func sampleFormula() entities.Formula {
	return entities.Formula{
		SuggestedName: "Antitérmico",
		Insumos: []entities.FormulaInsumo{
			{Name: "PARACETAMOL", Dose: "500mg", Justification: "Antipirético"},
		},
		DosageForm:    "Cápsula",
		TotalQuantity: "30 cápsulas",
	}
}

func sampleRecommendation() *entities.Recommendation {
	return &entities.Recommendation{
		Formula:        sampleFormula(),
		Posology:       "1 cápsula a cada 6 horas",
		SafetyWarnings: []string{},
		References:     []string{"Farmacopeia Brasileira 6ª Ed."},
		Metadata: entities.RecommendationMetadata{
			RequestID: "6f1c1d2e-0000-4000-8000-000000000000",
			Provider:  "mock",
		},
		Approved: true,
	}
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

func newTestHandler(recommender *MockRecommender, inputErr error, health *MockHealthChecker) *HTTPHandlerImpl {
	return NewHTTPHandler(
		recommender,
		pricing.NewCalculator(pricing.DefaultTable()),
		&MockInputValidator{err: inputErr},
		health,
	).(*HTTPHandlerImpl)
}
