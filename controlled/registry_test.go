package controlled

import (
	"testing"

	"github.com/giygas/magistral-api/entities"
)

func TestRegistryLookup(t *testing.T) {
	registry := NewDefaultRegistry()

	tests := []struct {
		name         string
		input        string
		wantFound    bool
		wantRegistry string
		wantSchedule entities.Schedule
	}{
		{"exact match", "DIAZEPAM", true, "DIAZEPAM", entities.ScheduleBlack},
		{"lowercase and padded", "  diazepam ", true, "DIAZEPAM", entities.ScheduleBlack},
		{"exact salt form", "CLORIDRATO DE AMITRIPTILINA", true, "CLORIDRATO DE AMITRIPTILINA", entities.ScheduleRed},
		{"ingredient contains registry name", "FENITOÍNA SÓDICA", true, "FENITOÍNA", entities.ScheduleRed},
		{"registry name contains ingredient", "ESCITALO", true, "ESCITALOPRAM", entities.ScheduleRed},
		{"opioid yellow", "Codeína", true, "CODEÍNA", entities.ScheduleYellow},
		{"not controlled", "PARACETAMOL", false, "", ""},
		{"empty", "   ", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, found := registry.Lookup(tt.input)
			if found != tt.wantFound {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.input, found, tt.wantFound)
			}
			if !found {
				return
			}
			if match.RegistryName != tt.wantRegistry {
				t.Errorf("Lookup(%q) registry name = %q, want %q", tt.input, match.RegistryName, tt.wantRegistry)
			}
			if match.Record.Schedule != tt.wantSchedule {
				t.Errorf("Lookup(%q) schedule = %q, want %q", tt.input, match.Record.Schedule, tt.wantSchedule)
			}
			if match.Record.DrugClass == "" || match.Record.RiskNote == "" {
				t.Errorf("Lookup(%q) returned incomplete record: %+v", tt.input, match.Record)
			}
		})
	}
}

func TestRegistryExactMatchWinsOverSubstring(t *testing.T) {
	registry := NewDefaultRegistry()

	// AMITRIPTILINA is registered before the salt form and is a substring of it.
	match, found := registry.Lookup("cloridrato de amitriptilina")
	if !found {
		t.Fatal("Expected salt form to be found")
	}
	if match.RegistryName != "CLORIDRATO DE AMITRIPTILINA" {
		t.Errorf("Expected exact record, got %s", match.RegistryName)
	}
}

func TestRegistryCoversAllSchedules(t *testing.T) {
	registry := NewDefaultRegistry()

	seen := map[entities.Schedule]bool{}
	for _, rec := range registry.records {
		seen[rec.Schedule] = true
	}

	for _, s := range []entities.Schedule{entities.ScheduleBlack, entities.ScheduleRed, entities.ScheduleYellow} {
		if !seen[s] {
			t.Errorf("Expected at least one %s record", s.Label())
		}
	}
	if registry.Len() < 40 {
		t.Errorf("Expected at least 40 records, got %d", registry.Len())
	}
}
