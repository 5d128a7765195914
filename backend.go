package qhal

import (
	"context"

	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
)

// Backend is the contract every quantum backend — hardware device or
// simulator — must satisfy. It is generic over C, the opaque circuit
// type, which QHAL passes through unexamined; the concrete backend
// supplies and interprets it.
//
// Lifecycle:
//
//	Capabilities() ──→ Validate() ──→ Submit() ──→ Status() ──→ Result()
//
// Name and Capabilities are synchronous, never block, and never fail;
// capabilities must be cached at construction. Every other operation may
// suspend on I/O, honors ctx cancellation, and fails with exactly one
// taxonomy Kind. Implementations must make Status, Result, and Cancel
// safe to call concurrently — job state lives at the backend, and Status
// is an idempotent read.
type Backend[C any] interface {
	// Name returns the backend's stable identifier.
	Name() string

	// Capabilities returns the backend's hardware description from
	// cached state. It must never perform I/O; the returned value is a
	// read-only snapshot neither side mutates.
	Capabilities() capability.Capabilities

	// Availability reports live queue and availability information.
	// "Currently busy" is a valid BackendAvailability, not an error;
	// failures are reserved for kinds like KindAuthenticationFailed or
	// KindConfiguration.
	Availability(ctx context.Context) (BackendAvailability, error)

	// Validate checks the circuit against Capabilities — qubit count,
	// gate-set membership, topology connectivity of multi-qubit
	// operations — and returns structured reasons rather than failing.
	// A circuit needing only gate or topology rewriting yields the
	// needs-transpilation variant, not outright invalidity.
	Validate(ctx context.Context, circuit C) (ValidationResult, error)

	// Submit queues the circuit for execution with the given shot count
	// and returns the backend-issued job ID. Fails with KindInvalidShots
	// when shots <= 0 or shots exceeds Capabilities().MaxShots, and with
	// KindInvalidCircuit / KindCircuitTooLarge / KindUnsupported per
	// validation failure. The job is observable as queued by the time
	// Submit returns.
	Submit(ctx context.Context, circuit C, shots int) (job.ID, error)

	// Status returns the job's lifecycle state. Fails with
	// KindJobNotFound for an unrecognized identifier.
	Status(ctx context.Context, id job.ID) (job.Status, error)

	// Result returns the execution result of a completed job. Defined
	// only when the job's last observed status is completed; calling it
	// earlier is a usage error the backend reports deterministically.
	Result(ctx context.Context, id job.ID) (*result.ExecutionResult, error)

	// Cancel requests cancellation, best-effort. Cancelling a job
	// already in a terminal state is a no-op, not an error.
	Cancel(ctx context.Context, id job.ID) error
}

// BackendAvailability reports whether a backend is accepting jobs,
// with optional queue depth and wait estimates for routing decisions.
// It is a value, not a failure: a busy-but-alive backend is distinct
// from an unreachable one.
type BackendAvailability struct {
	// IsAvailable is true when the backend accepts new jobs.
	IsAvailable bool `json:"is_available"`
	// QueueDepth is the number of queued jobs, nil when unknown.
	QueueDepth *int `json:"queue_depth,omitempty"`
	// EstimatedWaitSecs estimates the wait for a new job, nil when
	// unknown.
	EstimatedWaitSecs *float64 `json:"estimated_wait_secs,omitempty"`
	// StatusMessage is a human-readable status, empty when none.
	StatusMessage string `json:"status_message,omitempty"`
}

// AlwaysAvailable returns availability for a backend with zero queue and
// zero wait — typical for simulators.
func AlwaysAvailable() BackendAvailability {
	depth := 0
	wait := 0.0
	return BackendAvailability{
		IsAvailable:       true,
		QueueDepth:        &depth,
		EstimatedWaitSecs: &wait,
	}
}

// Unavailable returns availability for an offline backend with the
// given reason.
func Unavailable(reason string) BackendAvailability {
	return BackendAvailability{IsAvailable: false, StatusMessage: reason}
}

// ValidationResult is the outcome of pre-flight circuit validation.
// Three states are possible: valid (submit as-is), invalid (cannot run
// on this backend), or requires-transpilation (structurally sound but
// needs rewriting to the backend's native gate set or topology first).
// The third state lets an orchestrator compile and retry instead of
// routing elsewhere.
type ValidationResult struct {
	// IsValid is true only when the circuit can be submitted as-is.
	IsValid bool `json:"is_valid"`
	// Reasons lists human-readable validation failures.
	Reasons []string `json:"reasons,omitempty"`
	// RequiresTranspilation is true when the circuit could run after
	// transpilation.
	RequiresTranspilation bool `json:"requires_transpilation,omitempty"`
	// TranspilationDetails says what rewriting is needed.
	TranspilationDetails string `json:"transpilation_details,omitempty"`
}

// Valid returns the result for a circuit that can be submitted as-is.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid returns the result for a circuit that cannot run on the
// backend, with the reasons why.
func Invalid(reasons ...string) ValidationResult {
	return ValidationResult{Reasons: reasons}
}

// NeedsTranspilation returns the result for a circuit that could run
// after transpilation.
func NeedsTranspilation(details string) ValidationResult {
	return ValidationResult{
		RequiresTranspilation: true,
		TranspilationDetails:  details,
	}
}
