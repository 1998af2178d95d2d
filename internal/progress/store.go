package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Store is the process-wide progress tracker.
// Every answer is written through to the repository before RecordAnswer returns.
type Store struct {
	mu    sync.Mutex
	repo  Repository
	state *State
	now   func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore loads the progress document from repo.
// A missing document starts an empty store; a corrupt one is an error.
func NewStore(ctx context.Context, repo Repository, opts ...StoreOption) (*Store, error) {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if state == nil {
		state = NewState()
	}
	if state.Records == nil {
		state.Records = make(map[string]PerformanceRecord)
	}
	s.state = state

	slog.Debug("progress loaded", "records", len(state.Records), "total_reviews", state.TotalReviews)
	return s, nil
}

// OpenYAMLStore opens a store persisted to the YAML file at path.
func OpenYAMLStore(ctx context.Context, path string, opts ...StoreOption) (*Store, error) {
	return NewStore(ctx, NewYAMLRepository(path), opts...)
}

// GetOrCreate returns the record for id, creating a zeroed one if needed.
// A created record is kept in memory but not persisted.
func (s *Store) GetOrCreate(id string) PerformanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.state.Records[id]
	if !ok {
		s.state.Records[id] = r
	}
	return r.clone()
}

// Record returns the record for id without creating it.
func (s *Store) Record(id string) (PerformanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.state.Records[id]
	if !ok {
		return PerformanceRecord{}, false
	}
	return r.clone(), true
}

// RecordAnswer updates the statistics of id for one answer and persists the store.
// If persisting fails, the in-memory update is kept and an error wrapping
// ErrPersist is returned; Save can be retried.
func (s *Store) RecordAnswer(ctx context.Context, id string, correct bool, elapsedMs int64) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	r := s.state.Records[id]
	r.applyAnswer(correct, elapsedMs, now.UTC())
	s.state.Records[id] = r

	s.state.TotalReviews++
	s.state.updateDayStreak(now)
	s.state.logReview(now)

	slog.Debug("answer recorded",
		"id", id,
		"correct", correct,
		"streak", r.Streak,
		"difficulty", r.Difficulty,
		"next_review_at", r.NextReviewAt,
	)
	return s.save(ctx)
}

// Save writes the current progress to the repository.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *Store) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.state); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// DueIDs returns the candidates that are due now, keeping their order.
// Candidates without a record are due.
func (s *Store) DueIDs(candidateIDs []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	due := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		r, ok := s.state.Records[id]
		if !ok || r.IsDue(now) {
			due = append(due, id)
		}
	}
	return due
}

// Sessions returns a copy of the review activity log.
func (s *Store) Sessions() []SessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]SessionEntry, len(s.state.Sessions))
	copy(sessions, s.state.Sessions)
	return sessions
}

// Snapshot returns a deep copy of the whole progress document.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
