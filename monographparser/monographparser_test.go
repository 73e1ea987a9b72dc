package monographparser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/giygas/magistral-api/entities"
)

const yamlList = `
- name: PARACETAMOL
  code: FB-0123
  category: active_ingredient
  therapeutic_class: Analgésico e antipirético
  indications: [febre, " dor leve ", ""]
  source_document: Farmacopeia Brasileira 6ª Ed.
  content: Pó cristalino branco. Indicado para febre.
- name: DIPIRONA SÓDICA
  category: FINISHED_PRODUCT
  content: Analgésico.
- name: ""
  content: sem nome
- name: SEM CONTEUDO
- name: ESTRANHO
  category: vaccine
  content: categoria desconhecida
`

const jsonDoc = `{"monographs": [
  {"name": "LORATADINA", "therapeutic_class": "Anti-histamínico", "content": "Rinite alérgica."},
  {"name": "LORATADINA", "therapeutic_class": "Anti-histamínico", "content": "Rinite alérgica."}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadYAMLFile(t *testing.T) {
	p := NewMonographParser(writeFile(t, "monographs.yaml", yamlList))

	chunks, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 usable chunks, got %d", len(chunks))
	}

	first := chunks[0]
	if first.Name != "PARACETAMOL" || first.Code != "FB-0123" {
		t.Errorf("Unexpected first chunk %+v", first)
	}
	if len(first.Indications) != 2 || first.Indications[1] != "dor leve" {
		t.Errorf("Expected trimmed indications, got %q", first.Indications)
	}
	if first.ID == "" {
		t.Error("Expected a derived id")
	}
	if chunks[1].Category != entities.CategoryFinishedProduct {
		t.Errorf("Expected category to be normalised, got %s", chunks[1].Category)
	}
}

func TestDerivedIDsAreStable(t *testing.T) {
	path := writeFile(t, "monographs.yml", yamlList)

	a, err := NewMonographParser(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMonographParser(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if a[0].ID != b[0].ID {
		t.Errorf("Expected stable ids, got %s and %s", a[0].ID, b[0].ID)
	}
	if a[0].ID == a[1].ID {
		t.Error("Expected distinct ids for distinct records")
	}
}

func TestLoadJSONDocumentDropsDuplicates(t *testing.T) {
	p := NewMonographParser(writeFile(t, "monographs.json", jsonDoc))

	chunks, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("Expected duplicate to be dropped, got %d chunks", len(chunks))
	}
	if chunks[0].Category != entities.CategoryActiveIngredient {
		t.Errorf("Expected default category, got %s", chunks[0].Category)
	}
}

func TestLoadLatin1File(t *testing.T) {
	// "CAFEÍNA" with Í encoded as a single ISO-8859-1 byte
	content := []byte("- name: CAFE\xcdNA\n  content: Estimulante\n")
	path := filepath.Join(t.TempDir(), "latin1.yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	chunks, err := NewMonographParser(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if chunks[0].Name != "CAFEÍNA" {
		t.Errorf("Expected decoded name CAFEÍNA, got %q", chunks[0].Name)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		noMono  bool
	}{
		{"empty file", "empty.yaml", "   ", true},
		{"no usable records", "bad.yaml", "- name: X\n", true},
		{"invalid yaml", "broken.yaml", "- name: [unterminated", false},
		{"invalid json", "broken.json", "{", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMonographParser(writeFile(t, tt.file, tt.content)).Load(context.Background())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.noMono != errors.Is(err, ErrNoMonographs) {
				t.Errorf("errors.Is(err, ErrNoMonographs) = %v, want %v (err: %v)", !tt.noMono, tt.noMono, err)
			}
		})
	}

	if _, err := NewMonographParser(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/monographs":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name": "IBUPROFENO", "content": "Anti-inflamatório."}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	p := NewMonographParser(server.URL + "/monographs")
	if p.Location() != server.URL+"/monographs" {
		t.Errorf("Unexpected location %s", p.Location())
	}

	chunks, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(chunks) != 1 || chunks[0].Name != "IBUPROFENO" {
		t.Errorf("Unexpected chunks %+v", chunks)
	}

	if _, err := NewMonographParser(server.URL + "/missing").Load(context.Background()); err == nil {
		t.Error("Expected error for 404")
	}
}

func TestLoadRemoteCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMonographParser(server.URL).Load(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestLoadBundledSampleCorpus(t *testing.T) {
	chunks, err := NewMonographParser(filepath.Join("..", "data", "monographs.yaml")).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(chunks) != 8 {
		t.Fatalf("Expected 8 sample monographs, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.Category != entities.CategoryActiveIngredient || c.Content == "" {
			t.Errorf("Unexpected sample record %+v", c)
		}
	}
}
