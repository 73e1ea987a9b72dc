package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giygas/magistral-api/config"
	"github.com/giygas/magistral-api/data"
	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/expansion"
	"github.com/giygas/magistral-api/handlers"
	"github.com/giygas/magistral-api/health"
	"github.com/giygas/magistral-api/monographparser"
	"github.com/giygas/magistral-api/pricing"
	"github.com/giygas/magistral-api/recommend"
	"github.com/giygas/magistral-api/retrieval"
	"github.com/giygas/magistral-api/safety"
	"github.com/giygas/magistral-api/scheduler"
	"github.com/giygas/magistral-api/server"
	"github.com/giygas/magistral-api/storage"
	"github.com/giygas/magistral-api/validation"
)

const testCorpus = `monographs:
  - name: PARACETAMOL
    code: "001"
    category: active_ingredient
    therapeutic_class: Analgésico e antipirético
    indications: [febre, dor leve]
    source_document: Formulário Nacional
    content: Analgésico e antipirético indicado para febre e dor leve a moderada.
  - name: NISTATINA
    code: "002"
    category: active_ingredient
    therapeutic_class: Antifúngico
    indications: [candidíase oral]
    source_document: Formulário Nacional
    content: Antifúngico poliênico para candidíase oral e cutânea.
`

const paracetamolFormula = `{
	"formula": {
		"nome_sugerido": "Antitérmico",
		"insumos": [{"nome": "PARACETAMOL", "dose": "500mg", "justificativa": "Antipirético. Contraindicado em hepatopatas."}],
		"forma_farmaceutica": "Cápsula",
		"quantidade_total": "20 cápsulas"
	},
	"posologia": "1 cápsula a cada 6 horas",
	"justificativa_tecnica": "Paracetamol reduz a febre.",
	"alertas_seguranca": [],
	"referencias": ["Formulário Nacional"]
}`

// scriptedGenerator suggests fever terms during query expansion and returns
// a fixed formula for generation.
type scriptedGenerator struct {
	formula string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if systemInstruction == "" {
		if strings.Contains(prompt, "febre") {
			return "antipirético, analgésico", nil
		}
		return "nenhum", nil
	}
	return g.formula, nil
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func newIntegrationServer(t *testing.T) *server.Server {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "monographs.yaml")
	if err := os.WriteFile(source, []byte(testCorpus), 0o644); err != nil {
		t.Fatalf("Failed to write corpus: %v", err)
	}

	store, err := storage.Open(filepath.Join(dir, "index"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	index := data.NewIndexContainer()
	sched := scheduler.NewScheduler(index, monographparser.NewMonographParser(source), store, nil)
	if err := sched.Start(); err != nil {
		t.Fatalf("Failed to load index: %v", err)
	}
	t.Cleanup(sched.Stop)

	if count, err := store.Count(); err != nil || count != 2 {
		t.Fatalf("Expected 2 persisted monographs, got %d (%v)", count, err)
	}

	generator := &scriptedGenerator{formula: paracetamolFormula}
	retriever := retrieval.NewRetriever(expansion.NewExpander(generator, nil, time.Second), index, retrieval.Options{})
	pipeline := recommend.NewPipeline(retriever, generator, safety.NewClassifier(nil, nil), recommend.Options{DefaultTopK: 5})

	cfg := &config.Config{
		Port:              "8080",
		Address:           "127.0.0.1",
		Env:               config.EnvTest,
		MaxRequestBody:    1048576,
		MaxHeaderSize:     1048576,
		GenerationTimeout: 5 * time.Second,
	}
	handler := handlers.NewHTTPHandler(
		pipeline,
		pricing.NewCalculator(pricing.DefaultTable()),
		validation.NewSymptomValidator(),
		health.NewHealthChecker(index, generator.Name(), nil),
	)
	return server.NewServer(cfg, handler)
}

func TestIntegrationRecommendationFlow(t *testing.T) {
	srv := newIntegrationServer(t)

	body := `{"symptoms": "febre alta", "include_quote": true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var rec entities.Recommendation
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(rec.Formula.Insumos) != 1 || rec.Formula.Insumos[0].Name != "PARACETAMOL" {
		t.Errorf("Expected PARACETAMOL formula, got %+v", rec.Formula.Insumos)
	}
	if rec.Metadata.Provider != "scripted" {
		t.Errorf("Expected provider scripted, got %s", rec.Metadata.Provider)
	}
	if rec.Quote == nil || !strings.HasPrefix(rec.Quote.Formatted, "R$ ") {
		t.Errorf("Expected a formatted quote, got %+v", rec.Quote)
	}
}

func TestIntegrationCorpusLimitation(t *testing.T) {
	srv := newIntegrationServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/recommendations", strings.NewReader(`{"symptoms": "pontada no peito"}`))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var recErr entities.RecommendationError
	if err := json.Unmarshal(rr.Body.Bytes(), &recErr); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if recErr.Kind != entities.ErrorKindCorpusLimitation {
		t.Errorf("Expected CorpusLimitation, got %s", recErr.Kind)
	}
	if len(recErr.Suggestions) == 0 {
		t.Error("Expected remediation suggestions")
	}
}

func TestIntegrationHealth(t *testing.T) {
	srv := newIntegrationServer(t)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"monographs":2`) {
		t.Errorf("Expected monograph count in health data, got %s", rr.Body.String())
	}
}
