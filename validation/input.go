// Package validation checks user-supplied symptom text and validates the
// structured output of the generation step.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/giygas/magistral-api/interfaces"
)

const (
	MinSymptomLength = 3
	MaxSymptomLength = 1000
	MaxSymptomWords  = 150
	maxRepeatedRune  = 10
)

var (
	// Letters (any script, so Portuguese accents pass), digits, whitespace and common punctuation
	symptomRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.,;:!?'"()/%+ºª°]+$`)

	// Plain substring checks, lowercase
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "/*", "*/", "xp_", "exec(", "execute(",
		// Command injection patterns
		"`", "$(", "${", "&&", "||",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// SymptomValidator implements interfaces.InputValidator
type SymptomValidator struct{}

// NewSymptomValidator creates a new symptom validator
func NewSymptomValidator() interfaces.InputValidator {
	return &SymptomValidator{}
}

// ValidateSymptoms rejects empty, oversized or suspicious symptom text.
func (v *SymptomValidator) ValidateSymptoms(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("symptoms cannot be empty")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < MinSymptomLength {
		return fmt.Errorf("symptoms too short: minimum %d characters", MinSymptomLength)
	}
	if length > MaxSymptomLength {
		return fmt.Errorf("symptoms too long: maximum %d characters", MaxSymptomLength)
	}

	if len(strings.Fields(trimmed)) > MaxSymptomWords {
		return fmt.Errorf("symptoms too long: maximum %d words allowed", MaxSymptomWords)
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("symptoms contain potentially dangerous content")
		}
	}

	if !symptomRegex.MatchString(trimmed) {
		return fmt.Errorf("symptoms contain invalid characters. Only letters, numbers, spaces and common punctuation are allowed")
	}

	if hasExcessiveRepetition(trimmed) {
		return fmt.Errorf("symptoms contain excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition reports a rune repeated more than maxRepeatedRune
// times in a row.
func hasExcessiveRepetition(input string) bool {
	var prev rune
	run := 0
	for _, r := range input {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > maxRepeatedRune {
			return true
		}
	}
	return false
}
