package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/logging"
)

// Model failure kind for "nothing in the corpus fits".
const modelCorpusLimitation = "LIMITACAO_FARMACOPEIA"

// failureKeys mark a parsed object as a declined request.
var failureKeys = []string{"erro", "error"}

// MinChemicalNameLength is the shortest accepted ingredient name, in runes.
const MinChemicalNameLength = 5

// forbiddenNameTokens are class or category labels that must never be used
// as an ingredient name. Matched against the upper-cased name.
var forbiddenNameTokens = []string{
	"CLASSE TERAPÊUTICA",
	"ANALGÉSICO",
	"ANTIPIRÉTICO",
	"ANTICONVULSIVANTE",
	"SEDATIVO",
	"HIPNÓTICO",
	"ANTI-INFLAMATÓRIO",
	"ANTIBIÓTICO",
	"ANTIEMÉTICO",
	"CATEGORIA",
	"TERAPÊUTICA",
	"MEDICAMENTO",
}

// DefaultSuggestions are attached to every corpus-limitation failure.
var DefaultSuggestions = []string{
	"Tente descrever os sintomas de forma diferente",
	"Consulte um profissional de saúde para orientação adequada",
	"Verifique se existe outro medicamento similar disponível",
}

const declinedExplanation = "A Farmacopeia Brasileira 6ª Edição não contém medicamentos específicos para tratar esses sintomas. " +
	"Isso não significa que não existe tratamento, apenas que o medicamento adequado não está catalogado neste documento oficial."

// Wire shape requested by the prompt.
type modelInsumo struct {
	Nome          string `json:"nome"`
	Dose          string `json:"dose"`
	Justificativa string `json:"justificativa"`
}

type modelFormula struct {
	NomeSugerido      string        `json:"nome_sugerido"`
	Insumos           []modelInsumo `json:"insumos"`
	FormaFarmaceutica string        `json:"forma_farmaceutica"`
	QuantidadeTotal   string        `json:"quantidade_total"`
}

type modelResponse struct {
	Formula              *modelFormula `json:"formula"`
	Posologia            string        `json:"posologia"`
	JustificativaTecnica string        `json:"justificativa_tecnica"`
	AlertasSeguranca     []string      `json:"alertas_seguranca"`
	Referencias          []string      `json:"referencias"`
}

// modelFailure accepts both the Portuguese keys the prompt asks for and the
// English keys of the public failure object.
type modelFailure struct {
	Erro               string   `json:"erro"`
	TipoErro           string   `json:"tipo_erro"`
	Explicacao         string   `json:"explicacao"`
	SintomasInformados string   `json:"sintomas_informados"`
	Sugestoes          []string `json:"sugestoes"`

	Error            string   `json:"error"`
	ErrorKind        string   `json:"errorKind"`
	Explanation      string   `json:"explanation"`
	ReportedSymptoms string   `json:"reportedSymptoms"`
	Suggestions      []string `json:"suggestions"`
}

// Result is a validated generation output.
type Result struct {
	Formula                entities.Formula
	Posology               string
	TechnicalJustification string
	SafetyWarnings         []string
	References             []string
	// Corrections describe each substituted name ("old -> new").
	Corrections []string
	// Notices list every rejected name ("Nome inválido: X").
	Notices []string
}

// IsValidChemicalName rejects class labels, comma-joined descriptions and
// names shorter than MinChemicalNameLength.
func IsValidChemicalName(name string) bool {
	name = strings.TrimSpace(name)
	upper := strings.ToUpper(name)

	for _, token := range forbiddenNameTokens {
		if strings.Contains(upper, token) {
			return false
		}
	}
	if strings.Contains(name, ",") {
		return false
	}
	return utf8.RuneCountInString(name) >= MinChemicalNameLength
}

// StripCodeFence removes a surrounding Markdown code fence, preferring a
// ```json block when present.
func StripCodeFence(raw string) string {
	text := raw
	if _, after, ok := strings.Cut(text, "```json"); ok {
		text, _, _ = strings.Cut(after, "```")
	} else if _, after, ok := strings.Cut(text, "```"); ok {
		text, _, _ = strings.Cut(after, "```")
	}
	return strings.TrimSpace(text)
}

// ValidateResponse parses raw generation output and enforces the chemical-name
// contract against the retrieval candidates. Failures are always
// *entities.RecommendationError.
func ValidateResponse(raw, symptoms string, candidates []entities.RetrievedInsumo) (*Result, error) {
	text := StripCodeFence(raw)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, malformed(raw, err)
	}

	for _, key := range failureKeys {
		if _, declined := keys[key]; declined {
			return nil, normalizeFailure(text, raw, symptoms)
		}
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, malformed(raw, err)
	}
	if resp.Formula == nil || len(resp.Formula.Insumos) == 0 {
		return nil, malformed(raw, fmt.Errorf("response has no formula insumos"))
	}

	result := &Result{
		Formula: entities.Formula{
			SuggestedName: resp.Formula.NomeSugerido,
			DosageForm:    resp.Formula.FormaFarmaceutica,
			TotalQuantity: resp.Formula.QuantidadeTotal,
			Insumos:       make([]entities.FormulaInsumo, 0, len(resp.Formula.Insumos)),
		},
		Posology:               resp.Posologia,
		TechnicalJustification: resp.JustificativaTecnica,
		SafetyWarnings:         nonNil(resp.AlertasSeguranca),
		References:             nonNil(resp.Referencias),
	}

	var failed []string
	for _, in := range resp.Formula.Insumos {
		insumo := entities.FormulaInsumo{
			Name:          strings.TrimSpace(in.Nome),
			Dose:          in.Dose,
			Justification: in.Justificativa,
		}

		if !IsValidChemicalName(insumo.Name) {
			logging.Warn("Invalid ingredient name from model", "name", insumo.Name)
			result.Notices = append(result.Notices, "Nome inválido: "+insumo.Name)

			replacement, ok := firstValidCandidate(candidates)
			if !ok {
				failed = append(failed, insumo.Name)
				continue
			}

			result.Corrections = append(result.Corrections, insumo.Name+" -> "+replacement)
			insumo.Name = replacement
			insumo.Justification += " [Nome corrigido automaticamente: " + replacement + "]"
		}

		result.Formula.Insumos = append(result.Formula.Insumos, insumo)
	}

	if len(failed) > 0 {
		return nil, &entities.RecommendationError{
			Kind:             entities.ErrorKindUnresolvableName,
			Message:          fmt.Sprintf("Sistema gerou nome inválido '%s' e não foi possível corrigir", failed[0]),
			Suggestions:      []string{"Tente reformular os sintomas ou re-indexar a base de dados"},
			Details:          strings.Join(result.Notices, "; "),
			FailedNames:      failed,
			ReportedSymptoms: symptoms,
		}
	}

	return result, nil
}

func firstValidCandidate(candidates []entities.RetrievedInsumo) (string, bool) {
	for _, c := range candidates {
		name := strings.TrimSpace(c.Metadata.Name)
		if IsValidChemicalName(name) {
			return name, true
		}
	}
	return "", false
}

// normalizeFailure turns a model-declined response into a RecommendationError.
// Kinds other than the pipeline's own are reported as CorpusLimitation.
func normalizeFailure(text, raw, symptoms string) error {
	var f modelFailure
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return malformed(raw, err)
	}

	kind := entities.ErrorKindCorpusLimitation
	switch k := entities.ErrorKind(firstNonEmpty(f.ErrorKind, f.TipoErro)); k {
	case entities.ErrorKindMalformedResponse, entities.ErrorKindUnresolvableName, entities.ErrorKindUpstreamUnavailable:
		kind = k
	case "", entities.ErrorKindCorpusLimitation, modelCorpusLimitation:
	default:
		logging.Warn("Unknown failure kind from model", "kind", string(k))
	}

	suggestions := f.Sugestoes
	if len(suggestions) == 0 {
		suggestions = f.Suggestions
	}
	if len(suggestions) == 0 {
		suggestions = append([]string(nil), DefaultSuggestions...)
	}

	return &entities.RecommendationError{
		Kind:             kind,
		Message:          firstNonEmpty(f.Erro, f.Error, "Medicamento não disponível na Farmacopeia"),
		Explanation:      firstNonEmpty(f.Explicacao, f.Explanation, declinedExplanation),
		Suggestions:      suggestions,
		ReportedSymptoms: firstNonEmpty(symptoms, f.SintomasInformados, f.ReportedSymptoms),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func malformed(raw string, err error) error {
	return &entities.RecommendationError{
		Kind:        entities.ErrorKindMalformedResponse,
		Message:     "Falha ao parsear resposta do modelo",
		Details:     err.Error(),
		RawResponse: raw,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
