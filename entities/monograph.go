// Package entities holds the domain types shared by the recommendation pipeline:
// monograph chunks, formulas, safety assessments, price breakdowns and the
// structured error returned to callers.
package entities

// Category distinguishes active-ingredient monographs from finished products.
type Category string

const (
	CategoryActiveIngredient Category = "active_ingredient"
	CategoryFinishedProduct  Category = "finished_product"
)

// MonographChunk is one indexed piece of a pharmacopoeia monograph.
// Chunks are immutable once indexed.
type MonographChunk struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Code             string   `json:"code" yaml:"code"`
	Category         Category `json:"category" yaml:"category"`
	TherapeuticClass string   `json:"therapeutic_class" yaml:"therapeutic_class"`
	Indications      []string `json:"indications" yaml:"indications"`
	SourceDocument   string   `json:"source_document" yaml:"source_document"`
	Content          string   `json:"content" yaml:"content"`
}

// ScoredChunk is a search hit. Distance is non-negative, lower is more similar.
type ScoredChunk struct {
	Chunk    MonographChunk
	Distance float64
}

// InsumoMetadata is the subset of chunk metadata carried by a retrieval result.
type InsumoMetadata struct {
	Name             string   `json:"name"`
	Code             string   `json:"code,omitempty"`
	Category         Category `json:"category,omitempty"`
	TherapeuticClass string   `json:"therapeutic_class,omitempty"`
	Indications      []string `json:"indications,omitempty"`
	SourceDocument   string   `json:"source_document,omitempty"`
}

// RetrievedInsumo is a candidate ingredient produced for a single query.
// RelevanceScore lies in [0,1], higher is more relevant.
type RetrievedInsumo struct {
	Content        string         `json:"content"`
	Metadata       InsumoMetadata `json:"metadata"`
	RelevanceScore float64        `json:"relevance_score"`
}

// NewRetrievedInsumo builds a retrieval result from an indexed chunk.
func NewRetrievedInsumo(chunk MonographChunk, relevance float64) RetrievedInsumo {
	return RetrievedInsumo{
		Content: chunk.Content,
		Metadata: InsumoMetadata{
			Name:             chunk.Name,
			Code:             chunk.Code,
			Category:         chunk.Category,
			TherapeuticClass: chunk.TherapeuticClass,
			Indications:      chunk.Indications,
			SourceDocument:   chunk.SourceDocument,
		},
		RelevanceScore: relevance,
	}
}
