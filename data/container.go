// Package data provides the in-memory monograph index. A snapshot of the
// corpus and its lexical index is swapped atomically on reload so searches
// never see a half-built index.
package data

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
)

// Compile-time check to ensure IndexContainer implements IndexStore
var _ interfaces.IndexStore = (*IndexContainer)(nil)

type snapshot struct {
	chunks   []entities.MonographChunk
	index    *lexicalIndex
	loadedAt time.Time
	source   string
}

// IndexContainer holds the current snapshot with atomic swaps for zero-downtime reloads
type IndexContainer struct {
	current         atomic.Value // *snapshot
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewIndexContainer creates an empty container
func NewIndexContainer() *IndexContainer {
	ic := &IndexContainer{}
	ic.current.Store(&snapshot{index: buildLexicalIndex(nil)})
	ic.serverStartTime.Store(time.Time{})
	return ic
}

func (ic *IndexContainer) load() *snapshot {
	if v := ic.current.Load(); v != nil {
		if s, ok := v.(*snapshot); ok {
			return s
		}
	}

	logging.Warn("Index snapshot is empty or invalid")
	return &snapshot{}
}

// Search returns up to k chunks ordered by ascending distance (1 - cosine
// similarity). Chunks sharing no term with the query are not returned.
func (ic *IndexContainer) Search(ctx context.Context, query string, k int) ([]entities.ScoredChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := ic.load()
	hits := s.index.search(query, k)

	results := make([]entities.ScoredChunk, 0, len(hits))
	for _, h := range hits {
		distance := 1 - h.similarity
		if distance < 0 {
			distance = 0
		}
		results = append(results, entities.ScoredChunk{Chunk: s.chunks[h.doc], Distance: distance})
	}
	return results, nil
}

// Chunks returns the indexed chunks in load order
func (ic *IndexContainer) Chunks() []entities.MonographChunk {
	return ic.load().chunks
}

// Size returns the number of indexed chunks
func (ic *IndexContainer) Size() int {
	return len(ic.load().chunks)
}

// Source returns where the current snapshot was loaded from
func (ic *IndexContainer) Source() string {
	return ic.load().source
}

// GetLastUpdated returns when the current snapshot was built
func (ic *IndexContainer) GetLastUpdated() time.Time {
	return ic.load().loadedAt
}

// IsUpdating returns true if a reload is currently in progress
func (ic *IndexContainer) IsUpdating() bool {
	return ic.updating.Load()
}

// SetServerStartTime sets the server start time
func (ic *IndexContainer) SetServerStartTime(startTime time.Time) {
	ic.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (ic *IndexContainer) GetServerStartTime() time.Time {
	if v := ic.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// Replace builds a new index over chunks and swaps it in. The slice is
// copied so later mutation by the caller cannot affect searches.
func (ic *IndexContainer) Replace(chunks []entities.MonographChunk, source string) {
	owned := make([]entities.MonographChunk, len(chunks))
	copy(owned, chunks)

	ic.current.Store(&snapshot{
		chunks:   owned,
		index:    buildLexicalIndex(owned),
		loadedAt: time.Now(),
		source:   source,
	})
}

// BeginUpdate marks the start of a reload.
// Returns true if the reload can proceed, false if another is in progress
func (ic *IndexContainer) BeginUpdate() bool {
	return ic.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload
func (ic *IndexContainer) EndUpdate() {
	ic.updating.Store(false)
}
