package controlled

import "strings"

// VagueWordLimit is the word count below which a complaint containing a
// vague term is classified as vague.
const VagueWordLimit = 10

var defaultVagueTerms = []string{
	"fraqueza", "cansaço", "cansado", "fraco", "fadigado", "fadiga",
	"mal estar", "indisposição", "indisposto", "sem energia", "desânimo",
	"sono ruim", "dormindo mal", "não durmo bem", "acordo cansado",
	"estresse", "estressado", "nervoso", "ansioso", "preocupado",
	"triste", "desanimado", "sem vontade", "desmotivado",
}

// Vocabulary is the fixed list of non-specific complaint terms.
type Vocabulary struct {
	terms []string
}

// NewDefaultVocabulary returns the built-in vague-symptom vocabulary.
func NewDefaultVocabulary() *Vocabulary {
	terms := make([]string, len(defaultVagueTerms))
	copy(terms, defaultVagueTerms)
	return &Vocabulary{terms: terms}
}

// IsVague reports whether text contains at least one vague term and has
// fewer than VagueWordLimit words.
//
// A short but serious complaint that happens to share no vocabulary term
// ("dor no peito forte") is not vague, and a long description mentioning
// fatigue is not vague either. Callers rely on the heuristic as stated.
func (v *Vocabulary) IsVague(text string) bool {
	lower := strings.ToLower(text)

	found := false
	for _, term := range v.terms {
		if strings.Contains(lower, term) {
			found = true
			break
		}
	}

	return found && len(strings.Fields(text)) < VagueWordLimit
}
