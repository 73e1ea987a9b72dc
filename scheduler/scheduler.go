// Package scheduler keeps the monograph index fresh. It loads the corpus at
// startup, reloads it at the configured times of day, persists every good
// load and falls back to the persisted copy when the source is unavailable.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// StaleAfter is how old the index may get before the monitor starts warning.
const StaleAfter = 25 * time.Hour

var ErrNoCorpus = errors.New("no monograph corpus available")

// Scheduler handles index reloads using dependency injection
type Scheduler struct {
	index       interfaces.IndexStore
	source      interfaces.MonographSource
	repository  interfaces.MonographRepository
	reloadTimes []string
	loadTimeout time.Duration
	scheduler   *gocron.Scheduler
	stop        chan struct{}
}

// NewScheduler creates a scheduler. repository may be nil, in which case
// loads are not persisted and there is no fallback copy.
func NewScheduler(index interfaces.IndexStore, source interfaces.MonographSource, repository interfaces.MonographRepository, reloadTimes []string) *Scheduler {
	return &Scheduler{
		index:       index,
		source:      source,
		repository:  repository,
		reloadTimes: reloadTimes,
		loadTimeout: 2 * time.Minute,
		scheduler:   gocron.NewScheduler(time.Local),
		stop:        make(chan struct{}),
	}
}

// Start performs the initial load, schedules reloads and starts the
// staleness monitor. It fails only when no corpus could be loaded at all.
func (s *Scheduler) Start() error {
	if err := s.updateIndex(); err != nil {
		logging.Error("Failed to perform initial index load", "error", err)
		return fmt.Errorf("initial index load failed: %w", err)
	}

	if len(s.reloadTimes) > 0 {
		_, err := s.scheduler.Every(1).Days().At(strings.Join(s.reloadTimes, ";")).Do(func() {
			if err := s.updateIndex(); err != nil {
				logging.Error("Failed to reload index", "error", err)
			}
		})
		if err != nil {
			logging.Error("Failed to schedule index reloads", "error", err)
			return fmt.Errorf("failed to schedule index reloads: %w", err)
		}
		s.scheduler.StartAsync()
	}

	s.startHealthMonitoring()

	return nil
}

// Stop stops scheduled reloads and the monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
}

// updateIndex loads the source and swaps the index snapshot. When the source
// fails and the index is still empty, the persisted corpus is used instead.
func (s *Scheduler) updateIndex() error {
	// Prevent concurrent updates
	if !s.index.BeginUpdate() {
		logging.Info("Index update already in progress, skipping")
		return nil
	}
	defer s.index.EndUpdate()

	logging.Info("Starting index update", "source", s.source.Location())
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()

	chunks, err := s.source.Load(ctx)
	if err != nil {
		logging.Error("Failed to load monographs", "source", s.source.Location(), "error", err)
		if s.index.Size() > 0 {
			logging.Warn("Keeping previous index snapshot", "monographs", s.index.Size())
			return fmt.Errorf("failed to load monographs: %w", err)
		}
		return s.loadFallback(err)
	}

	if s.repository != nil {
		if perr := s.repository.ReplaceAll(chunks); perr != nil {
			logging.Warn("Failed to persist monographs", "error", perr)
		}
	}

	s.swap(chunks, s.source.Location())
	logging.Info("Index update completed", "duration", time.Since(start).String(), "monograph_count", len(chunks))

	return nil
}

func (s *Scheduler) loadFallback(cause error) error {
	if s.repository == nil {
		return fmt.Errorf("%w: %w", ErrNoCorpus, cause)
	}
	chunks, err := s.repository.LoadAll()
	if err != nil {
		return fmt.Errorf("%w: %w (fallback: %v)", ErrNoCorpus, cause, err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: %w", ErrNoCorpus, cause)
	}
	logging.Warn("Serving persisted monographs", "monograph_count", len(chunks))
	s.swap(chunks, "storage")
	return nil
}

func (s *Scheduler) swap(chunks []entities.MonographChunk, source string) {
	s.index.Replace(chunks, source)
	metrics.IndexChunks.Set(float64(len(chunks)))
}

// startHealthMonitoring warns when the index has not been refreshed for a day
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				lastUpdate := s.index.GetLastUpdated()
				if time.Since(lastUpdate) > StaleAfter {
					logging.Warn("Monograph index hasn't been updated in over 25 hours", "last_update", lastUpdate)
				}
			}
		}
	}()
}
