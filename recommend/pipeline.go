// Package recommend runs the symptom-to-formula pipeline: retrieval, prompt,
// generation, response validation and safety review.
package recommend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/metrics"
	"github.com/giygas/magistral-api/prompt"
	"github.com/giygas/magistral-api/safety"
	"github.com/giygas/magistral-api/validation"
)

const noCandidatesExplanation = "A Farmacopeia Brasileira 6ª Edição é um documento oficial que contém monografias de " +
	"medicamentos específicos. Nem todos os medicamentos ou classes terapêuticas estão disponíveis neste documento.\n\n" +
	"Para os sintomas informados, não foram encontrados medicamentos adequados na base de dados extraída da Farmacopeia Brasileira."

// CandidateRetriever produces the candidate ingredients for a symptom text.
type CandidateRetriever interface {
	Retrieve(ctx context.Context, symptoms string, topK int) ([]entities.RetrievedInsumo, error)
}

// Options configure the pipeline. Zero values disable the timeout and use
// a top-k of 5.
type Options struct {
	DefaultTopK       int
	GenerationTimeout time.Duration
}

// Pipeline implements interfaces.Recommender.
type Pipeline struct {
	retriever  CandidateRetriever
	generator  interfaces.Generator
	classifier *safety.Classifier
	opts       Options
}

var _ interfaces.Recommender = (*Pipeline)(nil)

// NewPipeline wires the pipeline stages. A nil classifier uses the built-in
// registry and vocabulary.
func NewPipeline(retriever CandidateRetriever, generator interfaces.Generator, classifier *safety.Classifier, opts Options) *Pipeline {
	if classifier == nil {
		classifier = safety.NewClassifier(nil, nil)
	}
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 5
	}
	return &Pipeline{
		retriever:  retriever,
		generator:  generator,
		classifier: classifier,
		opts:       opts,
	}
}

// Recommend returns a reviewed formula for symptoms. topK <= 0 uses the
// configured default. Every failure is a *entities.RecommendationError.
func (p *Pipeline) Recommend(ctx context.Context, symptoms string, topK int) (*entities.Recommendation, error) {
	rec, err := p.recommend(ctx, symptoms, topK)

	outcome := "success"
	var recErr *entities.RecommendationError
	if errors.As(err, &recErr) {
		outcome = string(recErr.Kind)
	}
	metrics.RecordOutcome(outcome)

	return rec, err
}

func (p *Pipeline) recommend(ctx context.Context, symptoms string, topK int) (*entities.Recommendation, error) {
	if topK <= 0 {
		topK = p.opts.DefaultTopK
	}
	log := logging.Logger().With("request_id", middleware.GetReqID(ctx), "provider", p.generator.Name())
	log.Debug("Recommendation requested", "symptoms", symptoms, "top_k", topK)

	candidates, err := p.retriever.Retrieve(ctx, symptoms, topK)
	if err != nil {
		log.Error("Retrieval failed", "stage", "retrieval", "error", err)
		return nil, upstream("Falha na busca de monografias", err)
	}
	if len(candidates) == 0 {
		log.Info("No candidates for symptoms", "stage", "retrieval", "candidates", 0)
		return nil, &entities.RecommendationError{
			Kind:             entities.ErrorKindCorpusLimitation,
			Message:          "Não foi possível encontrar medicamentos adequados",
			Explanation:      noCandidatesExplanation,
			Suggestions:      append([]string(nil), validation.DefaultSuggestions...),
			ReportedSymptoms: symptoms,
		}
	}
	log.Info("Candidates retrieved", "stage", "retrieval", "candidates", len(candidates))

	if err := ctx.Err(); err != nil {
		return nil, upstream("Requisição cancelada", err)
	}

	raw, err := p.generate(ctx, prompt.Build(symptoms, candidates))
	if err != nil {
		log.Error("Generation failed", "stage", "generation", "error", err)
		return nil, upstream("Erro ao gerar recomendação", err)
	}

	result, err := validation.ValidateResponse(raw, symptoms, candidates)
	if err != nil {
		log.Warn("Model output rejected", "stage", "validation", "error", err)
		return nil, err
	}

	assessment := p.classifier.Assess(result.Formula, symptoms)
	if assessment.RequiresSpecialAttention {
		names := make([]string, 0, len(assessment.ControlledSubstancesFound))
		for _, m := range assessment.ControlledSubstancesFound {
			names = append(names, m.Name+" ("+m.Schedule.Label()+")")
		}
		log.Warn("Controlled substance in formula", "stage", "safety", "substances", strings.Join(names, ", "))
	}

	consulted := make([]string, 0, len(candidates))
	for _, c := range candidates {
		consulted = append(consulted, c.Metadata.Name)
	}

	rec := &entities.Recommendation{
		Formula:                result.Formula,
		Posology:               result.Posology,
		TechnicalJustification: result.TechnicalJustification,
		SafetyWarnings:         append(result.SafetyWarnings, assessment.Warnings...),
		References:             result.References,
		Metadata: entities.RecommendationMetadata{
			RequestID:        uuid.NewString(),
			Provider:         p.generator.Name(),
			InsumosConsulted: consulted,
			OriginalSymptoms: symptoms,
			GeneratedAt:      time.Now().UTC(),
		},
		CriticalAlerts:       assessment.CriticalAlerts,
		ControlledSubstances: assessment.ControlledSubstancesFound,
		Corrections:          result.Corrections,
		SystemNotices:        result.Notices,
		Approved:             assessment.Approved(),
	}

	log.Info("Recommendation generated",
		"recommendation_id", rec.Metadata.RequestID,
		"insumos", len(rec.Formula.Insumos),
		"corrections", len(rec.Corrections),
		"critical_alerts", len(rec.CriticalAlerts))
	return rec, nil
}

func (p *Pipeline) generate(ctx context.Context, userPrompt string) (string, error) {
	if p.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.GenerationTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := p.generator.Generate(ctx, userPrompt, prompt.SystemInstruction)
	metrics.ObserveGeneration(p.generator.Name(), time.Since(start))
	return raw, err
}

func upstream(message string, err error) *entities.RecommendationError {
	return &entities.RecommendationError{
		Kind:    entities.ErrorKindUpstreamUnavailable,
		Message: message,
		Details: err.Error(),
	}
}
