// Package retrieval turns symptom text into a short, deduplicated list of
// candidate ingredients drawn from the monograph index.
package retrieval

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/expansion"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
)

// Options tune candidate filtering. Zero values fall back to the defaults.
type Options struct {
	Multiplier    int
	MinNameLength int
	Blacklist     []string
	SearchTimeout time.Duration
}

const (
	DefaultMultiplier    = 4
	DefaultMinNameLength = 5
)

// Retriever queries the index with the expanded symptom text.
type Retriever struct {
	expander *expansion.Expander
	index    interfaces.MonographIndex
	opts     Options
}

// NewRetriever creates a retriever. blacklist entries are matched
// case-insensitively as substrings of candidate names.
func NewRetriever(expander *expansion.Expander, index interfaces.MonographIndex, opts Options) *Retriever {
	if opts.Multiplier <= 0 {
		opts.Multiplier = DefaultMultiplier
	}
	if opts.MinNameLength <= 0 {
		opts.MinNameLength = DefaultMinNameLength
	}
	blacklist := make([]string, 0, len(opts.Blacklist))
	for _, b := range opts.Blacklist {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			blacklist = append(blacklist, b)
		}
	}
	opts.Blacklist = blacklist

	return &Retriever{expander: expander, index: index, opts: opts}
}

// Retrieve returns at most topK candidates. A short or empty list is a valid
// sparse-corpus outcome; an error means the index itself failed.
func (r *Retriever) Retrieve(ctx context.Context, symptoms string, topK int) ([]entities.RetrievedInsumo, error) {
	if topK <= 0 {
		return nil, nil
	}

	query := symptoms
	if r.expander != nil {
		query = r.expander.Expand(ctx, symptoms).Text(symptoms)
	}
	logging.Debug("Expanded retrieval query", "query", query)

	searchCtx := ctx
	if r.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, r.opts.SearchTimeout)
		defer cancel()
	}

	candidates, err := r.index.Search(searchCtx, query, r.opts.Multiplier*topK)
	if err != nil {
		return nil, fmt.Errorf("monograph search failed: %w", err)
	}

	accepted := r.Filter(candidates, topK)
	logging.Debug("Retrieval finished", "candidates", len(candidates), "accepted", len(accepted))
	return accepted, nil
}

// Filter walks candidates in rank order and keeps the first topK whose names
// are long enough, not boilerplate, and not already accepted.
func (r *Retriever) Filter(candidates []entities.ScoredChunk, topK int) []entities.RetrievedInsumo {
	accepted := make([]entities.RetrievedInsumo, 0, topK)
	seen := make(map[string]bool, topK)

	for _, c := range candidates {
		if len(accepted) >= topK {
			break
		}

		name := strings.ToLower(strings.TrimSpace(c.Chunk.Name))
		if utf8.RuneCountInString(name) < r.opts.MinNameLength {
			continue
		}
		if r.isBoilerplate(name) || seen[name] {
			continue
		}

		seen[name] = true
		accepted = append(accepted, entities.NewRetrievedInsumo(c.Chunk, Relevance(c.Distance)))
	}

	return accepted
}

func (r *Retriever) isBoilerplate(name string) bool {
	for _, term := range r.opts.Blacklist {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// Relevance converts a distance to a score in [0,1] rounded to 2 decimals.
func Relevance(distance float64) float64 {
	rel := math.Round((1-distance)*100) / 100
	return math.Max(0, math.Min(1, rel))
}
