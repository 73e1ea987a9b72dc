// Package expansion turns informal symptom descriptions into search terms.
// A language model suggests therapeutic classes and exact ingredient names;
// a static phrase dictionary covers misspellings and regional slang.
package expansion

import "strings"

// Entry maps a lowercase symptom phrase to the terms appended on a match.
type Entry struct {
	Pattern   string
	Expansion string
}

// Dictionary is an ordered, read-only list of entries.
type Dictionary struct {
	entries []Entry
}

// NewDefaultDictionary returns the built-in dictionary.
func NewDefaultDictionary() *Dictionary {
	return NewDictionary(defaultEntries)
}

// NewDictionary copies entries into a new dictionary. Patterns are lowercased.
func NewDictionary(entries []Entry) *Dictionary {
	d := &Dictionary{entries: make([]Entry, len(entries))}
	for i, e := range entries {
		d.entries[i] = Entry{Pattern: strings.ToLower(e.Pattern), Expansion: e.Expansion}
	}
	return d
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Match returns the expansions of every entry whose pattern occurs in text,
// joined by spaces.
func (d *Dictionary) Match(text string) string {
	lower := strings.ToLower(text)

	var terms []string
	for _, e := range d.entries {
		if strings.Contains(lower, e.Pattern) {
			terms = append(terms, e.Expansion)
		}
	}

	return strings.Join(terms, " ")
}
