// Package safety reviews a validated formula for controlled substances and
// structural problems. It only adds alerts for a human reviewer; it never
// blocks or edits the formula.
package safety

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/magistral-api/controlled"
	"github.com/giygas/magistral-api/entities"
)

// MaxInsumosBeforeReview is the ingredient count above which interactions
// must be reviewed.
const MaxInsumosBeforeReview = 5

const (
	VagueControlledAlert = "⛔ ATENÇÃO CRÍTICA: Medicamento controlado sugerido para sintomas VAGOS!\n" +
		"   A IA pode ter feito uma conexão inadequada.\n" +
		"   RECOMENDAÇÃO: Antes de prescrever, investigue:\n" +
		"   - Exames laboratoriais (hemograma, glicemia, TSH)\n" +
		"   - Histórico do paciente\n" +
		"   - Possíveis causas orgânicas\n" +
		"   Este tipo de sintoma geralmente NÃO requer psicotrópicos."

	ManyInsumosWarning        = "⚠️ Fórmula com muitos insumos (>5). Revisar interações."
	ContraindicationsWarning  = "ℹ️ Verifique contraindicações individuais de cada insumo."
	unclearUnitWarningPattern = "⚠️ Unidade de medida não clara para: %s"
)

// unitPattern finds a dose unit standing on its own: "500mg", "1 g", "5 ml", "10000UI".
var unitPattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(mcg|mg|g|ml|ui)(?:$|[^a-z])`)

var contraindicationMarkers = []string{"contraindicação", "contraindicado"}

// Classifier assesses formulas against the controlled-substance registry
// and the vague-symptom vocabulary. It is safe for concurrent use.
type Classifier struct {
	registry   *controlled.Registry
	vocabulary *controlled.Vocabulary
}

// NewClassifier creates a classifier. Nil arguments use the built-in tables.
func NewClassifier(registry *controlled.Registry, vocabulary *controlled.Vocabulary) *Classifier {
	if registry == nil {
		registry = controlled.NewDefaultRegistry()
	}
	if vocabulary == nil {
		vocabulary = controlled.NewDefaultVocabulary()
	}
	return &Classifier{registry: registry, vocabulary: vocabulary}
}

// Assess builds the safety assessment of formula for the original symptom text.
func (c *Classifier) Assess(formula entities.Formula, symptoms string) entities.SafetyAssessment {
	assessment := entities.SafetyAssessment{
		CriticalAlerts:            []string{},
		Warnings:                  []string{},
		ControlledSubstancesFound: []entities.ControlledSubstanceMatch{},
	}

	for _, insumo := range formula.Insumos {
		match, ok := c.registry.Lookup(insumo.Name)
		if !ok {
			continue
		}
		assessment.ControlledSubstancesFound = append(assessment.ControlledSubstancesFound, entities.ControlledSubstanceMatch{
			Name:                insumo.Name,
			RegistryName:        match.RegistryName,
			ControlledSubstance: match.Record,
		})
		assessment.CriticalAlerts = append(assessment.CriticalAlerts, controlledAlert(insumo.Name, match.Record))
	}

	if len(assessment.ControlledSubstancesFound) > 0 && strings.TrimSpace(symptoms) != "" && c.vocabulary.IsVague(symptoms) {
		assessment.CriticalAlerts = append([]string{VagueControlledAlert}, assessment.CriticalAlerts...)
	}

	if len(formula.Insumos) > MaxInsumosBeforeReview {
		assessment.Warnings = append(assessment.Warnings, ManyInsumosWarning)
	}

	if !mentionsContraindication(formula) {
		assessment.Warnings = append(assessment.Warnings, ContraindicationsWarning)
	}

	for _, insumo := range formula.Insumos {
		if !HasRecognizedUnit(insumo.Dose) {
			assessment.Warnings = append(assessment.Warnings, fmt.Sprintf(unclearUnitWarningPattern, insumo.Name))
		}
	}

	assessment.RequiresSpecialAttention = len(assessment.CriticalAlerts) > 0
	return assessment
}

func controlledAlert(name string, record entities.ControlledSubstance) string {
	return fmt.Sprintf("🚨 MEDICAMENTO CONTROLADO: %s\n"+
		"   • Tarja: %s\n"+
		"   • Classe: %s\n"+
		"   • Risco: %s\n"+
		"   • REQUER: Receita especial + Avaliação médica prévia",
		name, record.Schedule.Label(), record.DrugClass, record.RiskNote)
}

// mentionsContraindication looks for a marker anywhere in the serialized
// formula. One mention by any ingredient clears the warning for all of them,
// so adding an ingredient can remove it. Known limitation, kept as is.
func mentionsContraindication(formula entities.Formula) bool {
	serialized, err := json.Marshal(formula)
	if err != nil {
		return false
	}
	text := strings.ToLower(string(serialized))
	for _, marker := range contraindicationMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// HasRecognizedUnit reports whether dose names a unit (mg, g, mcg, ml or UI).
func HasRecognizedUnit(dose string) bool {
	return unitPattern.MatchString(dose)
}
