// Package controlled holds the controlled-substance registry and the
// vague-symptom vocabulary used by the safety classifier. Both are built
// once at startup and are read-only afterwards, so they are safe to share
// between concurrent requests without locking.
package controlled

import (
	"strings"

	"github.com/giygas/magistral-api/entities"
)

type record struct {
	name string
	entities.ControlledSubstance
}

// Registry maps substance names to their regulatory record.
type Registry struct {
	records []record
	byName  map[string]int
}

// Match is a successful registry lookup.
type Match struct {
	RegistryName string
	Record       entities.ControlledSubstance
}

func entry(name string, schedule entities.Schedule, class, risk string) record {
	return record{
		name: name,
		ControlledSubstance: entities.ControlledSubstance{
			Schedule:  schedule,
			DrugClass: class,
			RiskNote:  risk,
		},
	}
}

// defaultRecords mirrors the ANVISA Portaria 344/98 lists most often seen in
// compounding requests.
func defaultRecords() []record {
	black, red, yellow := entities.ScheduleBlack, entities.ScheduleRed, entities.ScheduleYellow
	return []record{
		// Benzodiazepines and hypnotics
		entry("DIAZEPAM", black, "Benzodiazepínico", "Dependência, sedação excessiva"),
		entry("CLONAZEPAM", black, "Benzodiazepínico", "Dependência, sedação excessiva"),
		entry("ALPRAZOLAM", black, "Benzodiazepínico", "Dependência, sedação excessiva"),
		entry("LORAZEPAM", black, "Benzodiazepínico", "Dependência, sedação excessiva"),
		entry("BROMAZEPAM", black, "Benzodiazepínico", "Dependência, sedação excessiva"),
		entry("MIDAZOLAM", black, "Benzodiazepínico", "Depressão respiratória"),
		entry("FENOBARBITAL", black, "Barbitúrico", "Dependência, depressão SNC"),
		entry("ZOLPIDEM", black, "Hipnótico", "Dependência, comportamento alterado"),

		// Antidepressants
		entry("AMITRIPTILINA", red, "Antidepressivo Tricíclico", "Arritmia, overdose letal"),
		entry("CLORIDRATO DE AMITRIPTILINA", red, "Antidepressivo Tricíclico", "Arritmia, overdose letal"),
		entry("NORTRIPTILINA", red, "Antidepressivo Tricíclico", "Arritmia, overdose letal"),
		entry("IMIPRAMINA", red, "Antidepressivo Tricíclico", "Arritmia, overdose letal"),
		entry("CLOMIPRAMINA", red, "Antidepressivo Tricíclico", "Arritmia, overdose letal"),
		entry("FLUOXETINA", red, "ISRS", "Síndrome serotoninérgica"),
		entry("SERTRALINA", red, "ISRS", "Síndrome serotoninérgica"),
		entry("PAROXETINA", red, "ISRS", "Síndrome de descontinuação"),
		entry("CITALOPRAM", red, "ISRS", "Prolongamento QT"),
		entry("ESCITALOPRAM", red, "ISRS", "Prolongamento QT"),
		entry("VENLAFAXINA", red, "IRSN", "Hipertensão, descontinuação"),
		entry("DULOXETINA", red, "IRSN", "Hepatotoxicidade"),
		entry("BUPROPIONA", red, "Antidepressivo", "Convulsões em doses altas"),

		// Antipsychotics
		entry("HALOPERIDOL", red, "Antipsicótico", "Síndrome extrapiramidal"),
		entry("CLORPROMAZINA", red, "Antipsicótico", "Sedação, hipotensão"),
		entry("RISPERIDONA", red, "Antipsicótico", "Ganho de peso, diabetes"),
		entry("OLANZAPINA", red, "Antipsicótico", "Ganho de peso, diabetes"),
		entry("QUETIAPINA", red, "Antipsicótico", "Sedação, síndrome metabólica"),

		// Opioids
		entry("MORFINA", yellow, "Opioide", "Dependência, depressão respiratória"),
		entry("CODEÍNA", yellow, "Opioide", "Dependência, constipação"),
		entry("TRAMADOL", red, "Opioide", "Dependência, convulsões"),
		entry("METADONA", yellow, "Opioide", "Depressão respiratória prolongada"),
		entry("OXICODONA", yellow, "Opioide", "Alta dependência"),
		entry("FENTANILA", yellow, "Opioide", "Depressão respiratória grave"),

		// Anticonvulsants
		entry("CARBAMAZEPINA", red, "Anticonvulsivante", "Síndrome Stevens-Johnson, agranulocitose"),
		entry("FENITOÍNA", red, "Anticonvulsivante", "Hiperplasia gengival, ataxia"),
		entry("VALPROATO", red, "Anticonvulsivante", "Hepatotoxicidade, teratogenia"),
		entry("ÁCIDO VALPRÓICO", red, "Anticonvulsivante", "Hepatotoxicidade, teratogenia"),
		entry("LAMOTRIGINA", red, "Anticonvulsivante", "Síndrome Stevens-Johnson"),
		entry("TOPIRAMATO", red, "Anticonvulsivante", "Glaucoma, acidose metabólica"),
		entry("GABAPENTINA", red, "Anticonvulsivante", "Sedação, dependência"),
		entry("PREGABALINA", red, "Anticonvulsivante", "Dependência, sedação"),
	}
}

// NewDefaultRegistry builds the registry with the built-in substance list.
func NewDefaultRegistry() *Registry {
	return newRegistry(defaultRecords())
}

func newRegistry(records []record) *Registry {
	r := &Registry{
		records: records,
		byName:  make(map[string]int, len(records)),
	}
	for i, rec := range records {
		r.byName[rec.name] = i
	}
	return r
}

// Len returns the number of registered substances.
func (r *Registry) Len() int {
	return len(r.records)
}

// Lookup matches an ingredient name against the registry: exact match on the
// upper-cased, trimmed name first, then substring containment in either
// direction, scanning in registration order.
func (r *Registry) Lookup(name string) (Match, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return Match{}, false
	}

	if i, ok := r.byName[key]; ok {
		return Match{RegistryName: r.records[i].name, Record: r.records[i].ControlledSubstance}, true
	}

	for _, rec := range r.records {
		if strings.Contains(key, rec.name) || strings.Contains(rec.name, key) {
			return Match{RegistryName: rec.name, Record: rec.ControlledSubstance}, true
		}
	}

	return Match{}, false
}
