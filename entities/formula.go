package entities

import "time"

// FormulaInsumo is one ingredient of a compounded formula. Dose is free text
// with an embedded unit ("500mg", "1 g").
type FormulaInsumo struct {
	Name          string `json:"name" validate:"required"`
	Dose          string `json:"dose"`
	Justification string `json:"justification"`
}

// Formula is a compounded formulation. Insumo order is presentation order only.
type Formula struct {
	SuggestedName string          `json:"suggested_name"`
	Insumos       []FormulaInsumo `json:"insumos" validate:"required,min=1,dive"`
	DosageForm    string          `json:"dosage_form"`
	TotalQuantity string          `json:"total_quantity"`
}

// RecommendationMetadata describes how a recommendation was produced.
type RecommendationMetadata struct {
	RequestID        string    `json:"request_id"`
	Provider         string    `json:"provider"`
	InsumosConsulted []string  `json:"insumos_consulted"`
	OriginalSymptoms string    `json:"original_symptoms"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// Recommendation is the successful result of the pipeline.
type Recommendation struct {
	Formula                Formula                    `json:"formula"`
	Posology               string                     `json:"posology"`
	TechnicalJustification string                     `json:"technical_justification"`
	SafetyWarnings         []string                   `json:"safety_warnings"`
	References             []string                   `json:"references"`
	Metadata               RecommendationMetadata     `json:"metadata"`
	CriticalAlerts         []string                   `json:"critical_alerts,omitempty"`
	ControlledSubstances   []ControlledSubstanceMatch `json:"controlled_substances,omitempty"`
	Corrections            []string                   `json:"corrections,omitempty"`
	SystemNotices          []string                   `json:"system_notices,omitempty"`
	Approved               bool                       `json:"approved"`
	Quote                  *Quote                     `json:"quote,omitempty"`
}
