// Package interfaces defines core abstractions for the recommendation service
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/magistral-api/entities"
)

// MonographIndex is the similarity-search capability over indexed monographs.
// Results are ordered by ascending distance.
type MonographIndex interface {
	Search(ctx context.Context, query string, k int) ([]entities.ScoredChunk, error)
}

// IndexStore defines the contract for the in-memory index snapshot.
// It provides thread-safe access with atomic swaps for zero-downtime reloads.
type IndexStore interface {
	MonographIndex

	// Snapshot information
	Size() int
	Source() string
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	// Update methods
	Replace(chunks []entities.MonographChunk, source string)
	BeginUpdate() bool
	EndUpdate()
}

// MonographSource loads the monograph corpus from its source of record.
type MonographSource interface {
	Load(ctx context.Context) ([]entities.MonographChunk, error)
	Location() string
}

// MonographRepository persists the last good corpus between restarts.
type MonographRepository interface {
	ReplaceAll(chunks []entities.MonographChunk) error
	LoadAll() ([]entities.MonographChunk, error)
	Count() (int, error)
	Close() error
}

// Generator is the text-generation capability. Output may be malformed;
// any returned error means "no usable output".
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
	Name() string
}

// Recommender is the pipeline entry point consumed by the HTTP layer.
// Failures are always *entities.RecommendationError.
type Recommender interface {
	Recommend(ctx context.Context, symptoms string, topK int) (*entities.Recommendation, error)
}

// Quoter prices a formula.
type Quoter interface {
	Price(formula entities.Formula) entities.PriceBreakdown
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	CreateRecommendation(w http.ResponseWriter, r *http.Request)
	CreateQuote(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled index reload
	CalculateNextUpdate() time.Time
}

// InputValidator validates user-supplied symptom text.
type InputValidator interface {
	ValidateSymptoms(input string) error
}
