// Package storage persists the last good monograph corpus in an embedded
// Badger database so a failed reload at startup can still serve data.
package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/timshannon/badgerhold/v4"
)

// Compile-time check to ensure MonographStore implements MonographRepository
var _ interfaces.MonographRepository = (*MonographStore)(nil)

// storedMonograph keeps the load order next to the chunk.
type storedMonograph struct {
	Seq   int
	Chunk entities.MonographChunk
}

// MonographStore is a badgerhold-backed MonographRepository
type MonographStore struct {
	store *badgerhold.Store
	path  string
}

// Open opens or creates the store in dir
func Open(dir string) (*MonographStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logging.Debug("Monograph store opened", "path", dir)
	return &MonographStore{store: store, path: dir}, nil
}

// ReplaceAll swaps the persisted corpus for chunks in one transaction. When
// the corpus is too large for a single transaction it is written in batches.
func (s *MonographStore) ReplaceAll(chunks []entities.MonographChunk) error {
	start := time.Now()

	err := s.store.Badger().Update(func(tx *badger.Txn) error {
		if err := s.store.TxDeleteMatching(tx, &storedMonograph{}, nil); err != nil {
			return err
		}
		for i, c := range chunks {
			if err := s.store.TxUpsert(tx, c.ID, &storedMonograph{Seq: i, Chunk: c}); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrTxnTooBig) {
		logging.Warn("Corpus too large for one transaction, writing in batches", "chunks", len(chunks))
		err = s.replaceInBatches(chunks)
	}
	if err != nil {
		return fmt.Errorf("failed to persist monographs: %w", err)
	}

	logging.Info("Monographs persisted",
		"chunks", len(chunks),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *MonographStore) replaceInBatches(chunks []entities.MonographChunk) error {
	if err := s.store.DeleteMatching(&storedMonograph{}, nil); err != nil {
		return err
	}

	const batchSize = 200
	for from := 0; from < len(chunks); from += batchSize {
		to := min(from+batchSize, len(chunks))
		err := s.store.Badger().Update(func(tx *badger.Txn) error {
			for i := from; i < to; i++ {
				if err := s.store.TxUpsert(tx, chunks[i].ID, &storedMonograph{Seq: i, Chunk: chunks[i]}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadAll returns the persisted chunks in their original load order
func (s *MonographStore) LoadAll() ([]entities.MonographChunk, error) {
	var records []storedMonograph
	if err := s.store.Find(&records, badgerhold.Where("Seq").Ge(0).SortBy("Seq")); err != nil {
		return nil, fmt.Errorf("failed to load monographs: %w", err)
	}

	chunks := make([]entities.MonographChunk, len(records))
	for i, r := range records {
		chunks[i] = r.Chunk
	}
	return chunks, nil
}

// Get returns a single chunk by id
func (s *MonographStore) Get(id string) (*entities.MonographChunk, error) {
	var record storedMonograph
	if err := s.store.Get(id, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("monograph not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get monograph: %w", err)
	}
	return &record.Chunk, nil
}

// Count returns the number of persisted chunks
func (s *MonographStore) Count() (int, error) {
	n, err := s.store.Count(&storedMonograph{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count monographs: %w", err)
	}
	return int(n), nil
}

// Close closes the database
func (s *MonographStore) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
