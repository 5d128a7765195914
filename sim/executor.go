package sim

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hiq-lab/qhal/job"
	"github.com/hiq-lab/qhal/result"
	"github.com/hiq-lab/qhal/store"
)

// executor runs a set of goroutines that claim queued job records from
// the store and execute them on the statevector engine.
type executor struct {
	sim    *Simulator
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func newExecutor(s *Simulator) *executor {
	return &executor{sim: s, stopCh: make(chan struct{})}
}

// start launches n claim loops. It returns immediately.
func (e *executor) start(n int) {
	for range n {
		e.wg.Add(1)
		go e.claimLoop()
	}
}

// stop signals all loops to stop and waits for in-flight jobs to land.
func (e *executor) stop() {
	close(e.stopCh)
	e.wg.Wait()
}

func (e *executor) claimLoop() {
	defer e.wg.Done()

	for {
		select {
		case <-e.stopCh:
			return
		default:
		}

		// A failed claim may still return records that were already
		// moved to running; they must be executed, not dropped.
		records, err := e.sim.store.ClaimQueued(context.Background(), 1)
		if err != nil {
			e.sim.logger.Error("claim error", slog.String("error", err.Error()))
		}
		if len(records) == 0 {
			e.sleep()
			continue
		}

		e.execute(records[0])
	}
}

// execute runs one claimed record through the statevector engine and
// writes the terminal state back to the store. The write is guarded on
// the record still being in running state, so a Cancel landing at any
// point before the write wins the race and the computed result is
// discarded.
func (e *executor) execute(rec *store.Record) {
	start := time.Now()
	logger := e.sim.logger.With(slog.String("job_id", rec.ID.String()))

	if e.sim.latency > 0 {
		time.Sleep(e.sim.latency)
	}

	res, simErr := e.run(rec)
	now := time.Now().UTC()

	if simErr != nil {
		rec.Status = job.StatusFailed
		rec.Error = simErr.Error()
		rec.CompletedAt = &now
		if e.finish(logger, rec) {
			logger.Warn("job failed",
				slog.String("reason", simErr.Error()),
				slog.Duration("elapsed", time.Since(start)),
			)
		}
		return
	}

	payload, err := json.Marshal(res)
	if err != nil {
		rec.Status = job.StatusFailed
		rec.Error = "encode result: " + err.Error()
		rec.CompletedAt = &now
		e.finish(logger, rec)
		return
	}

	rec.Status = job.StatusCompleted
	rec.Result = payload
	rec.CompletedAt = &now
	if e.finish(logger, rec) {
		logger.Info("job completed",
			slog.Int("shots", rec.Shots),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// finish writes the record's terminal state while it is still running.
// Reports whether the write landed; a conflict means Cancel got there
// first and the record keeps its cancelled status.
func (e *executor) finish(logger *slog.Logger, rec *store.Record) bool {
	err := e.sim.store.UpdateJobIf(context.Background(), rec, job.StatusRunning)
	switch {
	case errors.Is(err, store.ErrConflict):
		logger.Info("job cancelled during execution, result discarded")
		return false
	case err != nil:
		logger.Error("persist job outcome", slog.String("error", err.Error()))
		return false
	}
	return true
}

// run decodes the circuit payload, evolves the statevector, and samples
// measurement counts.
func (e *executor) run(rec *store.Record) (*result.ExecutionResult, error) {
	start := time.Now()

	var circuit Circuit
	if err := json.Unmarshal(rec.Payload, &circuit); err != nil {
		return nil, err
	}

	sv := newStatevector(circuit.Qubits)
	if err := sv.run(&circuit); err != nil {
		return nil, err
	}

	e.sim.rngMu.Lock()
	counts := sv.sample(e.sim.rng, circuit.Qubits, rec.Shots)
	e.sim.rngMu.Unlock()

	return result.New(counts, rec.Shots).
		WithExecutionTime(time.Since(start)).
		WithMetadata(map[string]any{
			"backend": e.sim.name,
			"qubits":  circuit.Qubits,
		}), nil
}

func (e *executor) sleep() {
	select {
	case <-e.stopCh:
	case <-time.After(e.sim.pollInterval):
	}
}
