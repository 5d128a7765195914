// Package job defines job identifiers and the lifecycle state machine.
//
// The state machine:
//
//	Submit ──→ queued ──→ running ──→ completed
//	             │           │
//	             │           ├──→ failed
//	             │           │
//	             └───────────┴──→ cancelled
//
// Transitions are monotonic — a job never moves backward — and terminal
// states are permanent.
package job

// ID is an opaque, backend-issued job identifier. Callers must not
// interpret its internal format; equality is by value. An ID is never
// reused for a different job.
type ID string

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// Status is the lifecycle state of a submitted job.
type Status string

const (
	// StatusQueued means the job is waiting in the backend's queue.
	StatusQueued Status = "queued"
	// StatusRunning means the backend is executing the job.
	StatusRunning Status = "running"
	// StatusCompleted means the job finished successfully and its
	// result is available.
	StatusCompleted Status = "completed"
	// StatusFailed means the job failed and will never produce a result.
	StatusFailed Status = "failed"
	// StatusCancelled means the job was cancelled.
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether the status is permanent: completed, failed,
// or cancelled.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// IsPending reports whether the job is still queued or running.
func (s Status) IsPending() bool {
	return s == StatusQueued || s == StatusRunning
}

// IsSuccess reports whether the job completed successfully.
func (s Status) IsSuccess() bool { return s == StatusCompleted }

// Valid reports whether s is one of the five lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusRunning, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// String returns the state name.
func (s Status) String() string { return string(s) }
