// Package memory implements store.JobStore fully in memory. Safe for
// concurrent access. Intended for unit testing and single-process
// simulators.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/store"
)

var _ store.JobStore = (*Store)(nil)

// Store is an in-memory JobStore.
type Store struct {
	mu     sync.RWMutex
	jobs   map[job.ID]*store.Record
	closed bool
}

// New returns a new empty Store.
func New() *Store {
	return &Store{jobs: make(map[job.ID]*store.Record)}
}

// CreateJob persists a new record.
func (m *Store) CreateJob(_ context.Context, r *store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return store.ErrClosed
	}
	if _, exists := m.jobs[r.ID]; exists {
		return store.ErrExists
	}
	cp := *r
	m.jobs[r.ID] = &cp
	return nil
}

// GetJob retrieves a record by ID.
func (m *Store) GetJob(_ context.Context, id job.ID) (*store.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, store.ErrClosed
	}
	r, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// UpdateJob persists changes to an existing record.
func (m *Store) UpdateJob(_ context.Context, r *store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return store.ErrClosed
	}
	if _, ok := m.jobs[r.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *r
	m.jobs[r.ID] = &cp
	return nil
}

// UpdateJobIf persists changes only while the record still holds the
// expected status.
func (m *Store) UpdateJobIf(_ context.Context, r *store.Record, expect job.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return store.ErrClosed
	}
	cur, ok := m.jobs[r.ID]
	if !ok {
		return store.ErrNotFound
	}
	if cur.Status != expect {
		return store.ErrConflict
	}
	cp := *r
	m.jobs[r.ID] = &cp
	return nil
}

// ClaimQueued atomically moves up to limit queued records to running.
func (m *Store) ClaimQueued(_ context.Context, limit int) ([]*store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, store.ErrClosed
	}

	candidates := make([]*store.Record, 0, limit)
	for _, r := range m.jobs {
		if r.Status == job.StatusQueued {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, k int) bool {
		return candidates[i].SubmittedAt.Before(candidates[k].SubmittedAt)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	now := time.Now().UTC()
	claimed := make([]*store.Record, len(candidates))
	for i, r := range candidates {
		r.Status = job.StatusRunning
		startedAt := now
		r.StartedAt = &startedAt
		// Return a copy so executors can mutate without racing the store.
		cp := *r
		claimed[i] = &cp
	}
	return claimed, nil
}

// CountQueued returns the number of records still queued.
func (m *Store) CountQueued(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, store.ErrClosed
	}
	n := 0
	for _, r := range m.jobs {
		if r.Status == job.StatusQueued {
			n++
		}
	}
	return n, nil
}

// Ping always succeeds while the store is open.
func (m *Store) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return store.ErrClosed
	}
	return nil
}

// Close marks the store closed. Further calls fail with ErrClosed.
func (m *Store) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
