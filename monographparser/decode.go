package monographparser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/logging"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrNoMonographs is returned when a source holds no usable record.
var ErrNoMonographs = errors.New("no usable monographs in source")

var monographNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("magistral-api/monographs"))

type format int

const (
	formatYAML format = iota
	formatJSON
)

// document accepts either a bare list or {"monographs": [...]}.
type document struct {
	Monographs []entities.MonographChunk `json:"monographs" yaml:"monographs"`
}

func detectFormat(location string, body []byte) format {
	lower := strings.ToLower(location)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return formatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return formatYAML
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return formatJSON
	}
	return formatYAML
}

func decode(body []byte, f format) ([]entities.MonographChunk, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrNoMonographs
	}

	var records []entities.MonographChunk
	switch f {
	case formatJSON:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, fmt.Errorf("failed to decode JSON monographs: %w", err)
			}
			break
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON monographs: %w", err)
		}
		records = doc.Monographs
	default:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("failed to decode YAML monographs: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&records); err != nil {
				return nil, fmt.Errorf("failed to decode YAML monographs: %w", err)
			}
			break
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML monographs: %w", err)
		}
		records = doc.Monographs
	}

	return normalize(records)
}

// normalize trims fields, drops unusable or duplicate records and assigns
// deterministic ids to records that have none.
func normalize(records []entities.MonographChunk) ([]entities.MonographChunk, error) {
	chunks := make([]entities.MonographChunk, 0, len(records))
	seen := make(map[string]bool, len(records))
	skipped := 0

	for i, r := range records {
		r.Name = strings.TrimSpace(r.Name)
		r.Code = strings.TrimSpace(r.Code)
		r.TherapeuticClass = strings.TrimSpace(r.TherapeuticClass)
		r.SourceDocument = strings.TrimSpace(r.SourceDocument)
		r.Content = strings.TrimSpace(r.Content)

		if err := validateRecord(&r); err != nil {
			logging.Warn("Skipping monograph record", "index", i, "name", r.Name, "error", err)
			skipped++
			continue
		}

		indications := r.Indications[:0]
		for _, ind := range r.Indications {
			if ind = strings.TrimSpace(ind); ind != "" {
				indications = append(indications, ind)
			}
		}
		r.Indications = indications

		if r.ID == "" {
			r.ID = uuid.NewSHA1(monographNamespace, []byte(r.Name+"\x00"+r.Code+"\x00"+r.Content)).String()
		}
		if seen[r.ID] {
			skipped++
			continue
		}
		seen[r.ID] = true

		chunks = append(chunks, r)
	}

	if len(chunks) == 0 {
		return nil, ErrNoMonographs
	}
	if skipped > 0 {
		logging.Info("Monograph records skipped", "skipped", skipped, "kept", len(chunks))
	}
	return chunks, nil
}

func validateRecord(r *entities.MonographChunk) error {
	if r.Name == "" {
		return fmt.Errorf("missing name")
	}
	if r.Content == "" {
		return fmt.Errorf("missing content")
	}

	switch entities.Category(strings.ToLower(string(r.Category))) {
	case "":
		r.Category = entities.CategoryActiveIngredient
	case entities.CategoryActiveIngredient, entities.CategoryFinishedProduct:
		r.Category = entities.Category(strings.ToLower(string(r.Category)))
	default:
		return fmt.Errorf("unknown category %q", r.Category)
	}
	return nil
}
