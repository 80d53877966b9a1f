package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"museum-map-api/internal/models"
	"museum-map-api/internal/search"
)

// LoadState distinguishes "still loading" from "loaded" from "failed".
// "Loaded but empty" is StateReady with empty slices, never StateFailed.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

var (
	// ErrLoading is returned while the initial fetch has not completed.
	ErrLoading = errors.New("service: data is still loading")
	// ErrLoadFailed is returned after the initial fetch failed; the state is
	// terminal, there is no retry.
	ErrLoadFailed = errors.New("service: failed to load data")
)

// SnapshotRepository is the read-only data source contract: two wholesale
// queries, no pagination, no write path.
type SnapshotRepository interface {
	ListMuseums(ctx context.Context) ([]models.Museum, error)
	ListEventsWithMuseums(ctx context.Context) ([]models.Event, error)
}

// Snapshot holds the immutable in-memory copy of all museums and events,
// fetched once at startup. Until Load completes, readers observe
// StateLoading; a failed load is terminal.
type Snapshot struct {
	mu      sync.RWMutex
	state   LoadState
	museums []models.Museum // prefecture-sorted once at load
	events  []models.Event
	loadErr error
	onReady []func()
	log     zerolog.Logger
}

// NewSnapshot creates an empty snapshot in the loading state.
func NewSnapshot(log zerolog.Logger) *Snapshot {
	return &Snapshot{state: StateLoading, log: log}
}

// Load fetches both entity types and replaces the snapshot wholesale. On any
// error the snapshot moves to the failed state and partial data is discarded;
// search logic never sees a half-loaded snapshot.
func (s *Snapshot) Load(ctx context.Context, repo SnapshotRepository) error {
	museums, err := repo.ListMuseums(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("service: loading museums: %w", err))
	}
	events, err := repo.ListEventsWithMuseums(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("service: loading events: %w", err))
	}

	sorted := search.ByPrefecture(museums)

	s.mu.Lock()
	s.museums = sorted
	s.events = events
	s.state = StateReady
	subscribers := s.onReady
	s.onReady = nil
	s.mu.Unlock()

	s.log.Info().
		Int("museums", len(sorted)).
		Int("events", len(events)).
		Msg("snapshot loaded")

	for _, fn := range subscribers {
		fn()
	}
	return nil
}

// NotifyReady registers fn to run once the load completes successfully. When
// the data is already loaded, fn runs immediately. A failed load never
// notifies.
func (s *Snapshot) NotifyReady(fn func()) {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		fn()
		return
	}
	s.onReady = append(s.onReady, fn)
	s.mu.Unlock()
}

func (s *Snapshot) fail(err error) error {
	s.mu.Lock()
	s.state = StateFailed
	s.loadErr = err
	s.mu.Unlock()
	s.log.Error().Err(err).Msg("snapshot load failed")
	return err
}

// State returns the current load state.
func (s *Snapshot) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err maps the load state to ErrLoading/ErrLoadFailed, or nil when ready.
func (s *Snapshot) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case StateLoading:
		return ErrLoading
	case StateFailed:
		return ErrLoadFailed
	default:
		return nil
	}
}

// Museums returns a copy of the prefecture-sorted museum list.
func (s *Snapshot) Museums() []models.Museum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Museum, len(s.museums))
	copy(out, s.museums)
	return out
}

// Events returns a copy of the event list.
func (s *Snapshot) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}
