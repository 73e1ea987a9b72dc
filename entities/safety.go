package entities

// Schedule is the regulatory prescription class of a controlled substance.
type Schedule string

const (
	ScheduleBlack  Schedule = "black"
	ScheduleRed    Schedule = "red"
	ScheduleYellow Schedule = "yellow"
)

// Label returns the schedule as printed on Brazilian packaging ("tarja").
func (s Schedule) Label() string {
	switch s {
	case ScheduleBlack:
		return "PRETA"
	case ScheduleRed:
		return "VERMELHA"
	case ScheduleYellow:
		return "AMARELA"
	default:
		return string(s)
	}
}

// ControlledSubstance is a registry record. Records are read-only after startup.
type ControlledSubstance struct {
	Schedule  Schedule `json:"schedule"`
	DrugClass string   `json:"drug_class"`
	RiskNote  string   `json:"risk_note"`
}

// ControlledSubstanceMatch ties a formula ingredient to the registry entry it matched.
type ControlledSubstanceMatch struct {
	Name         string `json:"name"`
	RegistryName string `json:"registry_name"`
	ControlledSubstance
}

// SafetyAssessment is derived per formula and never persisted.
type SafetyAssessment struct {
	CriticalAlerts            []string                   `json:"critical_alerts"`
	Warnings                  []string                   `json:"warnings"`
	ControlledSubstancesFound []ControlledSubstanceMatch `json:"controlled_substances_found"`
	RequiresSpecialAttention  bool                       `json:"requires_special_attention"`
}

// Approved is true when the assessment raised nothing for a reviewer.
func (a SafetyAssessment) Approved() bool {
	return len(a.CriticalAlerts) == 0 && len(a.Warnings) == 0
}
