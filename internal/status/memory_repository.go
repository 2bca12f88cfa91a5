package status

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	checks []*Check
}

// NewInMemoryRepository creates a new in-memory status repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Create stores a copy of check.
func (r *InMemoryRepository) Create(_ context.Context, check *Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *check
	r.checks = append(r.checks, &cpy)
	return nil
}

// List returns copies of the stored checks in insertion order.
func (r *InMemoryRepository) List(_ context.Context, limit int) ([]*Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.checks) {
		limit = len(r.checks)
	}

	out := make([]*Check, 0, limit)
	for _, c := range r.checks[:limit] {
		cpy := *c
		out = append(out, &cpy)
	}
	return out, nil
}
