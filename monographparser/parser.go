// Package monographparser loads the monograph corpus from a YAML or JSON
// file, local or remote, into index-ready chunks.
package monographparser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
)

// Compile-time check to ensure MonographParser implements MonographSource
var _ interfaces.MonographSource = (*MonographParser)(nil)

// MonographParser reads monographs from a file path or http(s) URL
type MonographParser struct {
	location string
}

// NewMonographParser creates a parser for location
func NewMonographParser(location string) *MonographParser {
	return &MonographParser{location: location}
}

// Location returns the configured source
func (p *MonographParser) Location() string {
	return p.location
}

func (p *MonographParser) isRemote() bool {
	return strings.HasPrefix(p.location, "http://") || strings.HasPrefix(p.location, "https://")
}

// Load fetches and decodes the source. It returns ErrNoMonographs when the
// source decodes but holds no usable record.
func (p *MonographParser) Load(ctx context.Context) ([]entities.MonographChunk, error) {
	start := time.Now()

	var (
		body []byte
		err  error
	)
	if p.isRemote() {
		body, err = download(ctx, p.location)
	} else {
		body, err = readFile(p.location)
	}
	if err != nil {
		return nil, err
	}

	chunks, err := decode(body, detectFormat(p.location, body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p.location, err)
	}

	logging.Info("Monographs parsed",
		"source", p.location,
		"chunks", len(chunks),
		"duration_ms", time.Since(start).Milliseconds())
	return chunks, nil
}
