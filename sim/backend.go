// Package sim provides a local statevector simulator implementing the
// backend contract end to end: jobs move through the same lifecycle as
// on real hardware, backed by a pluggable job store and an asynchronous
// executor pool.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.jetify.com/typeid/v2"
	"golang.org/x/time/rate"

	"github.com/hiq-lab/qhal"
	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
	"github.com/hiq-lab/qhal/store"
	"github.com/hiq-lab/qhal/store/memory"
)

// jobIDPrefix is the TypeID prefix for simulator job IDs.
const jobIDPrefix = "qjob"

var _ qhal.Backend[*Circuit] = (*Simulator)(nil)

// Simulator is a statevector backend over *Circuit. Submitted jobs are
// persisted to the job store in queued state and picked up by executor
// goroutines, so Submit returns before the job runs, exactly like a
// hardware backend.
type Simulator struct {
	name         string
	caps         capability.Capabilities
	store        store.JobStore
	logger       *slog.Logger
	limiter      *rate.Limiter
	latency      time.Duration
	pollInterval time.Duration
	concurrency  int
	seed         *int64

	rngMu sync.Mutex
	rng   *rand.Rand

	exec *executor

	mu     sync.Mutex
	closed bool
}

// New creates a simulator and starts its executor pool. Call Close to
// stop the executors and release the store.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		name:         "simulator",
		caps:         capability.Simulator(20),
		logger:       slog.Default(),
		latency:      5 * time.Millisecond,
		pollInterval: 10 * time.Millisecond,
		concurrency:  2,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = memory.New()
	}
	if s.seed != nil {
		s.rng = rand.New(rand.NewSource(*s.seed)) //nolint:gosec // sampling, not crypto
	} else {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // sampling, not crypto
	}

	s.exec = newExecutor(s)
	s.exec.start(s.concurrency)
	return s
}

// Name returns the backend name.
func (s *Simulator) Name() string { return s.name }

// Capabilities returns the advertised capabilities. This is a pure
// accessor: no I/O, same answer every call.
func (s *Simulator) Capabilities() capability.Capabilities {
	caps := s.caps
	caps.Name = s.name
	return caps
}

// Availability reports queue depth and an estimated wait based on the
// configured latency.
func (s *Simulator) Availability(ctx context.Context) (qhal.BackendAvailability, error) {
	if s.isClosed() {
		return qhal.Unavailable("simulator closed"), nil
	}
	depth, err := s.store.CountQueued(ctx)
	if err != nil {
		return qhal.BackendAvailability{}, qhal.BackendError("count queued: %v", err)
	}
	wait := float64(depth) * s.latency.Seconds()
	return qhal.BackendAvailability{
		IsAvailable:       true,
		QueueDepth:        &depth,
		EstimatedWaitSecs: &wait,
	}, nil
}

// Validate checks the circuit against the simulator's capabilities.
// Structural problems and capability violations come back as reasons in
// the ValidationResult, not as errors.
func (s *Simulator) Validate(_ context.Context, c *Circuit) (qhal.ValidationResult, error) {
	if c == nil {
		return qhal.Invalid("circuit is nil"), nil
	}

	var reasons []string
	if err := c.Check(); err != nil {
		reasons = append(reasons, err.Error())
	}
	if c.Qubits > s.caps.NumQubits {
		reasons = append(reasons, fmt.Sprintf(
			"circuit uses %d qubits; backend has %d", c.Qubits, s.caps.NumQubits))
	}

	var details []string
	var foreign []string
	for _, op := range c.Ops {
		if !s.caps.GateSet.Contains(op.Gate) {
			reasons = append(reasons, fmt.Sprintf("gate %q not in backend gate set", op.Gate))
			continue
		}
		if !s.caps.GateSet.IsNative(op.Gate) {
			foreign = append(foreign, op.Gate)
		}
		if len(op.Qubits) == 2 && s.requiresRouting(op.Qubits[0], op.Qubits[1]) {
			details = append(details, fmt.Sprintf(
				"qubits %d and %d not adjacent; %s needs routing", op.Qubits[0], op.Qubits[1], op.Gate))
		}
	}

	if len(reasons) > 0 {
		return qhal.Invalid(reasons...), nil
	}
	if len(foreign) > 0 {
		details = append(details, fmt.Sprintf(
			"non-native gates require decomposition: %s", strings.Join(foreign, ", ")))
	}
	if len(details) > 0 {
		return qhal.NeedsTranspilation(strings.Join(details, "; ")), nil
	}
	return qhal.Valid(), nil
}

// requiresRouting reports whether a two-qubit gate on the pair needs
// swap insertion. Topologies without an explicit edge list (fully
// connected, or custom with unknown edges) never require routing here.
func (s *Simulator) requiresRouting(a, b int) bool {
	topo := s.caps.Topology
	if topo.Kind == capability.KindFullyConnected {
		return false
	}
	if len(topo.Edges) == 0 {
		return false
	}
	return !topo.IsConnected(a, b)
}

// Submit validates the circuit and shot count, persists a queued job
// record, and returns its ID. Execution happens asynchronously.
// Circuits flagged for transpilation are accepted: the statevector
// engine applies any supported gate directly, so topology and native-
// gate constraints are advisory here, not blocking.
func (s *Simulator) Submit(ctx context.Context, c *Circuit, shots int) (job.ID, error) {
	if s.isClosed() {
		return "", qhal.BackendUnavailable("simulator closed")
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return "", qhal.BackendUnavailable("submit rate limit exceeded")
	}
	if shots < 1 {
		return "", qhal.InvalidShots("shots must be at least 1, got %d", shots)
	}
	if s.caps.MaxShots > 0 && shots > s.caps.MaxShots {
		return "", qhal.InvalidShots("shots %d exceeds backend maximum %d", shots, s.caps.MaxShots)
	}

	vr, err := s.Validate(ctx, c)
	if err != nil {
		return "", err
	}
	switch {
	case vr.IsValid:
	case vr.RequiresTranspilation:
		s.logger.Debug("executing circuit without transpilation",
			slog.String("details", vr.TranspilationDetails))
	default:
		if c != nil && c.Qubits > s.caps.NumQubits {
			return "", qhal.CircuitTooLarge("%s", strings.Join(vr.Reasons, "; "))
		}
		return "", qhal.InvalidCircuit("%s", strings.Join(vr.Reasons, "; "))
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return "", qhal.SubmissionFailed(fmt.Errorf("encode circuit: %w", err))
	}

	id, err := newJobID()
	if err != nil {
		return "", qhal.SubmissionFailed(err)
	}

	rec := &store.Record{
		ID:          id,
		Backend:     s.name,
		Status:      job.StatusQueued,
		Shots:       shots,
		Payload:     payload,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.CreateJob(ctx, rec); err != nil {
		return "", qhal.SubmissionFailed(fmt.Errorf("persist job: %w", err))
	}

	s.logger.Info("job submitted",
		slog.String("job_id", id.String()),
		slog.Int("shots", shots),
		slog.Int("qubits", c.Qubits),
		slog.Int("ops", c.NumOps()),
	)
	return id, nil
}

// Status returns the job's lifecycle status.
func (s *Simulator) Status(ctx context.Context, id job.ID) (job.Status, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.Status, nil
}

// Result returns the execution result of a completed job. Pending jobs
// yield a backend_error; failed and cancelled jobs yield their terminal
// taxonomy errors.
func (s *Simulator) Result(ctx context.Context, id job.ID) (*result.ExecutionResult, error) {
	rec, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	switch rec.Status {
	case job.StatusCompleted:
		var res result.ExecutionResult
		if err := json.Unmarshal(rec.Result, &res); err != nil {
			return nil, qhal.BackendError("decode stored result for %s: %v", id, err)
		}
		return &res, nil
	case job.StatusFailed:
		return nil, qhal.JobFailed(id, rec.Error)
	case job.StatusCancelled:
		return nil, qhal.JobCancelled(id)
	default:
		return nil, qhal.BackendError("job %s not complete: %s", id, rec.Status)
	}
}

// Cancel moves a queued or running job to cancelled. Cancelling a job
// already in a terminal state is a no-op. The write is guarded on the
// status Cancel observed; if the job moves (claimed, or finished by an
// executor) between read and write, Cancel re-reads and tries again.
func (s *Simulator) Cancel(ctx context.Context, id job.ID) error {
	for {
		rec, err := s.getRecord(ctx, id)
		if err != nil {
			return err
		}
		if rec.Status.IsTerminal() {
			return nil
		}

		prev := rec.Status
		now := time.Now().UTC()
		rec.Status = job.StatusCancelled
		rec.CompletedAt = &now
		err = s.store.UpdateJobIf(ctx, rec, prev)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return qhal.BackendError("cancel %s: %v", id, err)
		}
		s.logger.Info("job cancelled", slog.String("job_id", id.String()))
		return nil
	}
}

// Close stops the executor pool and closes the job store.
func (s *Simulator) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.exec.stop()
	return s.store.Close()
}

func (s *Simulator) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Simulator) getRecord(ctx context.Context, id job.ID) (*store.Record, error) {
	rec, err := s.store.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, qhal.JobNotFound(id)
		}
		return nil, qhal.BackendError("get job %s: %v", id, err)
	}
	return rec, nil
}

func newJobID() (job.ID, error) {
	tid, err := typeid.Generate(jobIDPrefix)
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}
	return job.ID(tid.String()), nil
}
