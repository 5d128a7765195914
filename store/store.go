// Package store defines persistence for backend job records. A backend
// that executes jobs locally (like the bundled simulator) keeps each
// job's lifecycle row in a JobStore; remote backends keep state at the
// remote service and need no store at all.
//
// Backends: memory (testing and single-process use), redis (several
// processes sharing one job namespace), and bun (durable PostgreSQL).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hiq-lab/qhal/job"
)

var (
	// ErrNotFound means the job ID is unknown to the store.
	ErrNotFound = errors.New("qhal/store: job not found")
	// ErrExists means a record with the same ID was already created.
	ErrExists = errors.New("qhal/store: job already exists")
	// ErrConflict means a conditional update found the record in a
	// different status than expected.
	ErrConflict = errors.New("qhal/store: status conflict")
	// ErrClosed means the store was closed.
	ErrClosed = errors.New("qhal/store: closed")
)

// Record is the persisted lifecycle row for one submitted job.
type Record struct {
	ID      job.ID     `json:"id"`
	Backend string     `json:"backend"`
	Status  job.Status `json:"status"`
	Shots   int        `json:"shots"`
	// Payload is the backend's serialized circuit snapshot. The store
	// never interprets it.
	Payload []byte `json:"payload,omitempty"`
	// Result is the serialized ExecutionResult, set when completed.
	Result []byte `json:"result,omitempty"`
	// Error is the failure reason, set when failed.
	Error string `json:"error,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JobStore is the persistence interface for job records. Implementations
// must be safe for concurrent use: executors claim and update records
// while callers poll them.
type JobStore interface {
	// CreateJob persists a new record. Fails with ErrExists on a
	// duplicate ID. The record must be readable (GetJob) before
	// CreateJob returns, so submitters can observe the queued status.
	CreateJob(ctx context.Context, r *Record) error

	// GetJob returns a copy of the record, or ErrNotFound.
	GetJob(ctx context.Context, id job.ID) (*Record, error)

	// UpdateJob persists changes to an existing record, or ErrNotFound.
	UpdateJob(ctx context.Context, r *Record) error

	// UpdateJobIf persists changes only while the stored record is still
	// in the expected status. Fails with ErrConflict when another writer
	// moved the record first (e.g. a cancellation racing an executor),
	// or ErrNotFound. The check and the write are atomic.
	UpdateJobIf(ctx context.Context, r *Record, expect job.Status) error

	// ClaimQueued atomically moves up to limit queued records to
	// running, stamps StartedAt, and returns them oldest-first. Records
	// that left the queued state (e.g. cancelled) are never claimed.
	ClaimQueued(ctx context.Context, limit int) ([]*Record, error)

	// CountQueued returns the number of records still in queued state.
	CountQueued(ctx context.Context) (int, error)

	// Ping checks store connectivity.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
