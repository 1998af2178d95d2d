package progress

import (
	"context"
	"sync"
)

//go:generate mockgen -source=repository.go -destination=../mocks/progress/mock_repository.go -package=mock_progress Repository

// Repository loads and saves the whole progress document at once.
type Repository interface {
	// Load returns the stored document, or an empty one if nothing was stored yet.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}

// MemoryRepository keeps the progress document in memory.
type MemoryRepository struct {
	mu    sync.Mutex
	state *State
}

// NewMemoryRepository creates a repository holding a copy of initial, which may be nil.
func NewMemoryRepository(initial *State) *MemoryRepository {
	repo := &MemoryRepository{}
	if initial != nil {
		repo.state = initial.Clone()
	}
	return repo
}

func (r *MemoryRepository) Load(_ context.Context) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == nil {
		return NewState(), nil
	}
	return r.state.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, state *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state.Clone()
	return nil
}
