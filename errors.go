package qhal

import (
	"errors"
	"fmt"

	"github.com/hiq-lab/qhal/job"
)

// Kind identifies the failure category of a backend operation.
// Every operation in the contract fails with exactly one Kind; callers
// branch on Kind, never on message text.
type Kind string

const (
	// KindBackendUnavailable means the backend temporarily cannot accept
	// work. Transient — retry with backoff.
	KindBackendUnavailable Kind = "backend_unavailable"
	// KindTimeout means a wait or poll exceeded its bound. Transient.
	KindTimeout Kind = "timeout"
	// KindInvalidCircuit means a structural problem with the circuit.
	KindInvalidCircuit Kind = "invalid_circuit"
	// KindCircuitTooLarge means the circuit exceeds backend capacity.
	KindCircuitTooLarge Kind = "circuit_too_large"
	// KindInvalidShots means the shot count is outside the backend's
	// allowed range.
	KindInvalidShots Kind = "invalid_shots"
	// KindUnsupported means a feature the backend does not implement.
	KindUnsupported Kind = "unsupported"
	// KindSubmissionFailed means the submission attempt itself failed.
	KindSubmissionFailed Kind = "submission_failed"
	// KindJobFailed means the job entered failed status. Terminal —
	// polling the same job ID will never yield a result.
	KindJobFailed Kind = "job_failed"
	// KindJobCancelled means the job entered cancelled status. Terminal.
	KindJobCancelled Kind = "job_cancelled"
	// KindJobNotFound means the job identifier is unknown to the backend.
	KindJobNotFound Kind = "job_not_found"
	// KindAuthenticationFailed means a credential or auth problem.
	KindAuthenticationFailed Kind = "authentication_failed"
	// KindConfiguration means a misconfigured backend or client.
	KindConfiguration Kind = "configuration"
	// KindBackendError is the catch-all for backend-specific failures.
	KindBackendError Kind = "backend_error"
)

// Class is the recovery class of a Kind.
type Class int

const (
	// ClassTransient errors are safe to retry with backoff.
	ClassTransient Class = iota
	// ClassPermanent errors will not succeed on retry; fix the input.
	ClassPermanent
	// ClassTerminal errors mean the job reached a terminal state; no
	// further polling of the same job ID will yield a result.
	ClassTerminal
	// ClassBackendDefined errors have backend-specific recovery semantics.
	ClassBackendDefined
)

// Class returns the recovery class of the kind.
func (k Kind) Class() Class {
	switch k {
	case KindBackendUnavailable, KindTimeout:
		return ClassTransient
	case KindJobFailed, KindJobCancelled:
		return ClassTerminal
	case KindSubmissionFailed, KindBackendError:
		return ClassBackendDefined
	default:
		return ClassPermanent
	}
}

// Error is the error type returned by all contract operations. It carries
// the taxonomy Kind, a human-readable message, the job ID where one is
// in play, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	JobID   job.ID
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.JobID != "":
		return fmt.Sprintf("qhal: %s: job %s: %s", e.Kind, e.JobID, e.Message)
	case e.JobID != "":
		return fmt.Sprintf("qhal: %s: job %s", e.Kind, e.JobID)
	case e.Message != "":
		return fmt.Sprintf("qhal: %s: %s", e.Kind, e.Message)
	default:
		return "qhal: " + string(e.Kind)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Transient reports whether the error is safe to retry with backoff.
func (e *Error) Transient() bool { return e.Kind.Class() == ClassTransient }

// Terminal reports whether the error marks a terminal job state.
func (e *Error) Terminal() bool { return e.Kind.Class() == ClassTerminal }

// ──────────────────────────────────────────────────
// Constructors
// ──────────────────────────────────────────────────

// NewError builds an Error with the given kind and formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BackendUnavailable reports a backend that temporarily cannot accept work.
func BackendUnavailable(format string, args ...any) *Error {
	return NewError(KindBackendUnavailable, format, args...)
}

// Timeout reports a wait that exceeded its bound for the given job.
func Timeout(id job.ID) *Error {
	return &Error{Kind: KindTimeout, JobID: id, Message: "wait exceeded poll bound"}
}

// InvalidCircuit reports a structural problem with a submitted circuit.
func InvalidCircuit(format string, args ...any) *Error {
	return NewError(KindInvalidCircuit, format, args...)
}

// CircuitTooLarge reports a circuit exceeding backend capacity.
func CircuitTooLarge(format string, args ...any) *Error {
	return NewError(KindCircuitTooLarge, format, args...)
}

// InvalidShots reports a shot count outside the backend's allowed range.
func InvalidShots(format string, args ...any) *Error {
	return NewError(KindInvalidShots, format, args...)
}

// Unsupported reports a feature the backend does not implement.
func Unsupported(format string, args ...any) *Error {
	return NewError(KindUnsupported, format, args...)
}

// SubmissionFailed reports a failed submission attempt.
func SubmissionFailed(err error) *Error {
	return &Error{Kind: KindSubmissionFailed, Message: "submit", Err: err}
}

// JobFailed reports a job that entered failed status.
func JobFailed(id job.ID, reason string) *Error {
	return &Error{Kind: KindJobFailed, JobID: id, Message: reason}
}

// JobCancelled reports a job that entered cancelled status.
func JobCancelled(id job.ID) *Error {
	return &Error{Kind: KindJobCancelled, JobID: id}
}

// JobNotFound reports an unknown job identifier.
func JobNotFound(id job.ID) *Error {
	return &Error{Kind: KindJobNotFound, JobID: id}
}

// AuthenticationFailed reports a credential or auth problem.
func AuthenticationFailed(format string, args ...any) *Error {
	return NewError(KindAuthenticationFailed, format, args...)
}

// ConfigurationError reports a misconfigured backend or client.
func ConfigurationError(format string, args ...any) *Error {
	return NewError(KindConfiguration, format, args...)
}

// BackendError wraps a backend-specific failure.
func BackendError(format string, args ...any) *Error {
	return NewError(KindBackendError, format, args...)
}

// ──────────────────────────────────────────────────
// Inspection helpers
// ──────────────────────────────────────────────────

// KindOf extracts the taxonomy kind from err. Errors that do not carry a
// *Error anywhere in their chain map to KindBackendError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackendError
}

// IsTransient reports whether err is safe to retry with backoff.
// Only errors carrying a transient Kind qualify; unknown errors do not.
func IsTransient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Transient()
}

// IsTerminal reports whether err marks a terminal job state.
func IsTerminal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Terminal()
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
