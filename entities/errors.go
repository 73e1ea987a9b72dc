package entities

import "fmt"

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	// ErrorKindCorpusLimitation: no adequate candidate, or the model declined.
	ErrorKindCorpusLimitation ErrorKind = "CorpusLimitation"
	// ErrorKindMalformedResponse: generation output is not the required structure.
	ErrorKindMalformedResponse ErrorKind = "MalformedResponse"
	// ErrorKindUnresolvableName: an ingredient name could not be reconciled with any candidate.
	ErrorKindUnresolvableName ErrorKind = "UnresolvableName"
	// ErrorKindUpstreamUnavailable: search or generation failed or timed out.
	ErrorKindUpstreamUnavailable ErrorKind = "UpstreamUnavailable"
)

// RecommendationError is the structured failure returned to callers of the pipeline.
type RecommendationError struct {
	Message          string    `json:"error"`
	Kind             ErrorKind `json:"error_kind"`
	Explanation      string    `json:"explanation,omitempty"`
	Suggestions      []string  `json:"suggestions,omitempty"`
	ReportedSymptoms string    `json:"reported_symptoms,omitempty"`
	Details          string    `json:"details,omitempty"`
	RawResponse      string    `json:"raw_response,omitempty"`
	FailedNames      []string  `json:"failed_names,omitempty"`
}

func (e *RecommendationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Retryable reports whether resubmitting the same request may succeed.
func (e *RecommendationError) Retryable() bool {
	return e.Kind == ErrorKindUpstreamUnavailable
}
