package result

import "time"

// ExecutionResult is the outcome of a completed job: measurement counts
// plus the requested shot count, optional wall-clock execution time, and
// opaque backend metadata.
type ExecutionResult struct {
	Counts *Counts `json:"counts"`
	// Shots is the shot count requested at submission.
	Shots int `json:"shots"`
	// ExecutionTimeMS is the wall-clock execution time in milliseconds.
	// Nil means unknown.
	ExecutionTimeMS *int64 `json:"execution_time_ms,omitempty"`
	// Metadata carries backend-specific values the contract never
	// interprets.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// New returns an ExecutionResult for the given counts and shot count.
func New(counts *Counts, shots int) *ExecutionResult {
	if counts == nil {
		counts = NewCounts()
	}
	return &ExecutionResult{Counts: counts, Shots: shots}
}

// WithExecutionTime returns the result with the execution time recorded.
func (r *ExecutionResult) WithExecutionTime(d time.Duration) *ExecutionResult {
	ms := d.Milliseconds()
	r.ExecutionTimeMS = &ms
	return r
}

// WithMetadata returns the result with backend metadata attached.
func (r *ExecutionResult) WithMetadata(meta map[string]any) *ExecutionResult {
	r.Metadata = meta
	return r
}

// Probabilities returns the per-bitstring probability map.
func (r *ExecutionResult) Probabilities() map[string]float64 {
	return r.Counts.Probabilities()
}

// MostFrequent returns the most frequent bitstring and its probability.
// The second return is false when no outcomes were recorded. Ties follow
// Counts.MostFrequent.
func (r *ExecutionResult) MostFrequent() (string, float64, bool) {
	total := r.Counts.TotalShots()
	if total == 0 {
		return "", 0, false
	}
	bitstring, count, ok := r.Counts.MostFrequent()
	if !ok {
		return "", 0, false
	}
	return bitstring, float64(count) / float64(total), true
}
