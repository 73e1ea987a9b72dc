package expansion

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/metrics"
)

const suggestionPrompt = `Você é um especialista em farmacologia. Traduza a descrição informal de sintomas abaixo para termos técnicos de busca.

Responda com:
1. Classes terapêuticas adequadas (ex: analgésico, antipirético, antiácido, antianginoso)
2. Nomes EXATOS de princípios ativos, escolhidos SOMENTE da lista abaixo

PRINCÍPIOS ATIVOS DISPONÍVEIS:
- Dor/Febre: PARACETAMOL, DIPIRONA, ÁCIDO ACETILSALICÍLICO, IBUPROFENO, NAPROXENO
- Coração/Peito: CLORIDRATO DE PROPRANOLOL, CLORIDRATO DE DILTIAZEM, CAPTOPRIL, ATENOLOL
- Tosse/Catarro: ACETILCISTEÍNA, AMINOFILINA, TEOFILINA
- Estômago: BICARBONATO DE SÓDIO, HIDRÓXIDO DE ALUMÍNIO, CARBONATO DE CÁLCIO
- Alergia: LORATADINA, MALEATO DE DEXCLORFENIRAMINA, ACETATO DE HIDROCORTISONA
- Infecção: AMOXICILINA, AZITROMICINA, AMPICILINA
- Diabetes: CLORIDRATO DE METFORMINA, GLIBENCLAMIDA
- Hipertensão: CAPTOPRIL, ATENOLOL, HIDROCLOROTIAZIDA
- Ansiedade: DIAZEPAM, CLONAZEPAM
- Fungos: FLUCONAZOL, NISTATINA, GRISEOFULVINA
- Intestino: SULFATO DE MAGNÉSIO, BROMOPRIDA

EXEMPLOS:
- "dor d cabesa" -> analgésico antipirético PARACETAMOL DIPIRONA
- "pontada no lado esquerdo do peito" -> antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM
- "to com o bucho zoado" -> antiácido BICARBONATO DE SÓDIO CARBONATO DE CÁLCIO

SINTOMAS: %s

Responda APENAS com os termos separados por espaço, sem explicações.`

var (
	separators = strings.NewReplacer("\n", " ", ",", " ", ".", " ")
	spaces     = regexp.MustCompile(`\s+`)
)

// ExpandedQuery carries both term sources for one symptom text.
type ExpandedQuery struct {
	LLMTerms    string
	ManualTerms string
}

// Text returns the query sent to the index: original, model terms and
// dictionary terms, space-joined in that order.
func (q ExpandedQuery) Text(original string) string {
	return original + " " + q.LLMTerms + " " + q.ManualTerms
}

// Expander combines the model suggester with the static dictionary.
type Expander struct {
	generator  interfaces.Generator
	dictionary *Dictionary
	timeout    time.Duration
}

// NewExpander creates an expander. A nil generator disables model suggestions.
func NewExpander(generator interfaces.Generator, dictionary *Dictionary, timeout time.Duration) *Expander {
	if dictionary == nil {
		dictionary = NewDefaultDictionary()
	}
	return &Expander{
		generator:  generator,
		dictionary: dictionary,
		timeout:    timeout,
	}
}

// Expand never fails: model errors and timeouts degrade to dictionary-only terms.
func (e *Expander) Expand(ctx context.Context, symptoms string) ExpandedQuery {
	return ExpandedQuery{
		LLMTerms:    e.suggest(ctx, symptoms),
		ManualTerms: e.dictionary.Match(symptoms),
	}
}

func (e *Expander) suggest(ctx context.Context, symptoms string) string {
	if e.generator == nil {
		return ""
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	out, err := e.generator.Generate(ctx, fmt.Sprintf(suggestionPrompt, symptoms), "")
	if err != nil {
		logging.Warn("Query expansion fell back to dictionary terms", "provider", e.generator.Name(), "error", err)
		metrics.ExpansionFallbacks.Inc()
		return ""
	}

	return normalizeTerms(out)
}

// normalizeTerms replaces newlines, commas and periods with spaces and
// collapses whitespace.
func normalizeTerms(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(separators.Replace(s), " "))
}
