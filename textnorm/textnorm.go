// Package textnorm folds Portuguese text into comparable search tokens.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token kept by Tokenize, in runes.
const MinTokenLength = 3

// stopwords are already folded.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		que com uma umas uns para por pelo pela pelos pelas dos das nos nas num numa
		sem mais menos como quando onde qual quais seu sua seus suas meu minha meus minhas
		ser sao estar esta estou estao este esse isso isto aquele aquela tem ter tenho
		nao sim muito muita muitos muitas pouco mas ate tambem entre sobre apos desde
		foi sao era sido sendo pode podem deve devem cada outro outra outros outras
		todo toda todos todas the and`) {
		stopwords[w] = struct{}{}
	}
}

// Fold lowercases s and strips diacritics ("Cafeína" -> "cafeina").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Tokenize folds s and splits it on anything that is not a letter or digit,
// dropping short tokens and stopwords. Order and duplicates are preserved.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < MinTokenLength {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsStopword reports whether the folded token is ignored by Tokenize.
func IsStopword(token string) bool {
	_, ok := stopwords[Fold(token)]
	return ok
}
