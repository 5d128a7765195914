// Package result holds measurement outcomes from circuit execution.
//
// Bitstring ordering follows the OpenQASM 3 convention: the rightmost
// character of a bitstring is qubit 0. The string "01" means qubit 0
// measured 1 and qubit 1 measured 0. Backends converting from a native
// result format must reorder bits before inserting into Counts.
package result

import (
	"encoding/json"
	"sort"
)

// Counts is a multiset of measurement bitstrings. Repeated Add calls for
// the same bitstring accumulate. Once returned by a backend, a Counts
// value is owned by the caller and independent of backend state.
type Counts struct {
	counts map[string]uint64
}

// NewCounts returns empty counts.
func NewCounts() *Counts {
	return &Counts{counts: make(map[string]uint64)}
}

// FromMap builds counts from a bitstring→count map, copying it.
func FromMap(m map[string]uint64) *Counts {
	c := NewCounts()
	for k, v := range m {
		c.Add(k, v)
	}
	return c
}

// Add accumulates count occurrences of the bitstring.
func (c *Counts) Add(bitstring string, count uint64) {
	if c.counts == nil {
		c.counts = make(map[string]uint64)
	}
	c.counts[bitstring] += count
}

// Get returns the count for the bitstring, zero when absent.
func (c *Counts) Get(bitstring string) uint64 {
	return c.counts[bitstring]
}

// TotalShots returns the sum of all entries.
func (c *Counts) TotalShots() uint64 {
	var total uint64
	for _, v := range c.counts {
		total += v
	}
	return total
}

// MostFrequent returns the bitstring with the highest count. Ties
// resolve to the lexicographically smallest bitstring, so the answer is
// deterministic across runs and platforms. The second return is false
// for empty counts.
func (c *Counts) MostFrequent() (string, uint64, bool) {
	if len(c.counts) == 0 {
		return "", 0, false
	}
	var (
		best      string
		bestCount uint64
		found     bool
	)
	for k, v := range c.counts {
		if !found || v > bestCount || (v == bestCount && k < best) {
			best, bestCount, found = k, v, true
		}
	}
	return best, bestCount, true
}

// Probabilities returns the per-bitstring probability (count / total).
// Empty counts yield an empty map — never a division by zero.
func (c *Counts) Probabilities() map[string]float64 {
	probs := make(map[string]float64, len(c.counts))
	total := float64(c.TotalShots())
	if total == 0 {
		return probs
	}
	for k, v := range c.counts {
		probs[k] = float64(v) / total
	}
	return probs
}

// Sorted returns (bitstring, count) entries ordered by count descending,
// ties by bitstring ascending.
func (c *Counts) Sorted() []Entry {
	entries := make([]Entry, 0, len(c.counts))
	for k, v := range c.counts {
		entries = append(entries, Entry{Bitstring: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Bitstring < entries[j].Bitstring
	})
	return entries
}

// Entry is one (bitstring, count) pair.
type Entry struct {
	Bitstring string `json:"bitstring"`
	Count     uint64 `json:"count"`
}

// Len returns the number of distinct bitstrings.
func (c *Counts) Len() int { return len(c.counts) }

// IsEmpty reports whether no outcomes were recorded.
func (c *Counts) IsEmpty() bool { return len(c.counts) == 0 }

// Map returns a copy of the underlying bitstring→count map.
func (c *Counts) Map() map[string]uint64 {
	m := make(map[string]uint64, len(c.counts))
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes counts as a plain bitstring→count object.
func (c *Counts) MarshalJSON() ([]byte, error) {
	if c.counts == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.counts)
}

// UnmarshalJSON decodes a plain bitstring→count object.
func (c *Counts) UnmarshalJSON(data []byte) error {
	m := make(map[string]uint64)
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.counts = m
	return nil
}
