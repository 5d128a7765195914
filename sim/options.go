package sim

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hiq-lab/qhal/capability"
	"github.com/hiq-lab/qhal/store"
)

// Option configures the simulator.
type Option func(*Simulator)

// WithName sets the backend name reported by Name and Capabilities.
func WithName(name string) Option {
	return func(s *Simulator) { s.name = name }
}

// WithQubits sets the register size. Larger registers cost memory
// exponentially; sizes above ~26 are impractical.
func WithQubits(n int) Option {
	return func(s *Simulator) { s.caps = capability.Simulator(n) }
}

// WithCapabilities replaces the advertised capabilities entirely. Use
// this to emulate a hardware device's gate set and topology, e.g.
// capability.IQM("garnet", 20).
func WithCapabilities(caps capability.Capabilities) Option {
	return func(s *Simulator) { s.caps = caps }
}

// WithStore sets the job store. Defaults to an in-process memory store;
// pass a redis or bun store to share jobs across processes.
func WithStore(js store.JobStore) Option {
	return func(s *Simulator) { s.store = js }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithConcurrency sets the number of executor goroutines.
func WithConcurrency(n int) Option {
	return func(s *Simulator) { s.concurrency = n }
}

// WithLatency sets the artificial per-job execution delay, emulating
// hardware queue time. Zero means results land as fast as the executor
// can compute them.
func WithLatency(d time.Duration) Option {
	return func(s *Simulator) { s.latency = d }
}

// WithPollInterval sets how often idle executor goroutines poll the
// store for queued jobs.
func WithPollInterval(d time.Duration) Option {
	return func(s *Simulator) { s.pollInterval = d }
}

// WithSubmitRate limits Submit to r jobs per second with the given
// burst. Submissions over the limit fail with a transient
// backend_unavailable error.
func WithSubmitRate(r rate.Limit, burst int) Option {
	return func(s *Simulator) { s.limiter = rate.NewLimiter(r, burst) }
}

// WithSeed seeds the measurement sampler for reproducible counts.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.seed = &seed }
}
