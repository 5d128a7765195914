package sim

import (
	"fmt"

	"github.com/hiq-lab/qhal/capability"
)

// Op is one gate application inside a circuit.
type Op struct {
	Gate   string    `json:"gate"`
	Qubits []int     `json:"qubits"`
	Params []float64 `json:"params,omitempty"`
}

// Circuit is the simulator's circuit type: an ordered list of gate
// applications on a fixed qubit register. It serializes to JSON so job
// payloads survive a store round-trip.
//
// Builder methods mutate the receiver and return it for chaining:
//
//	c := sim.NewCircuit(2).H(0).CX(0, 1)
type Circuit struct {
	Qubits int  `json:"qubits"`
	Ops    []Op `json:"ops"`
}

// NewCircuit creates an empty circuit over the given number of qubits.
func NewCircuit(qubits int) *Circuit {
	return &Circuit{Qubits: qubits}
}

// Apply appends an arbitrary gate. The gate name is normalized to
// lowercase so "CX" and "cx" are the same gate.
func (c *Circuit) Apply(gate string, qubits []int, params ...float64) *Circuit {
	c.Ops = append(c.Ops, Op{
		Gate:   capability.NormalizeGate(gate),
		Qubits: qubits,
		Params: params,
	})
	return c
}

// ── Single-qubit builders ─────────────────────────────────────────

func (c *Circuit) H(q int) *Circuit { return c.Apply("h", []int{q}) }
func (c *Circuit) X(q int) *Circuit { return c.Apply("x", []int{q}) }
func (c *Circuit) Y(q int) *Circuit { return c.Apply("y", []int{q}) }
func (c *Circuit) Z(q int) *Circuit { return c.Apply("z", []int{q}) }
func (c *Circuit) S(q int) *Circuit { return c.Apply("s", []int{q}) }
func (c *Circuit) T(q int) *Circuit { return c.Apply("t", []int{q}) }

func (c *Circuit) RX(q int, theta float64) *Circuit { return c.Apply("rx", []int{q}, theta) }
func (c *Circuit) RY(q int, theta float64) *Circuit { return c.Apply("ry", []int{q}, theta) }
func (c *Circuit) RZ(q int, theta float64) *Circuit { return c.Apply("rz", []int{q}, theta) }

// ── Multi-qubit builders ──────────────────────────────────────────

func (c *Circuit) CX(control, target int) *Circuit {
	return c.Apply("cx", []int{control, target})
}

func (c *Circuit) CZ(control, target int) *Circuit {
	return c.Apply("cz", []int{control, target})
}

func (c *Circuit) Swap(a, b int) *Circuit {
	return c.Apply("swap", []int{a, b})
}

func (c *Circuit) CCX(c1, c2, target int) *Circuit {
	return c.Apply("ccx", []int{c1, c2, target})
}

// NumOps returns the number of gate applications.
func (c *Circuit) NumOps() int { return len(c.Ops) }

// Check verifies structural well-formedness: a positive register size,
// in-range qubit indices, no repeated qubits within one op, and the
// right operand count for each gate's arity. Gate names outside the
// standard vocabulary skip the arity check; whether they are supported
// at all is the backend's job.
func (c *Circuit) Check() error {
	if c.Qubits < 1 {
		return fmt.Errorf("circuit needs at least 1 qubit, has %d", c.Qubits)
	}
	known := capability.UniversalGates()
	for i, op := range c.Ops {
		if op.Gate == "" {
			return fmt.Errorf("op %d: empty gate name", i)
		}
		if len(op.Qubits) == 0 {
			return fmt.Errorf("op %d (%s): no qubit operands", i, op.Gate)
		}
		if want, ok := known.Arity(op.Gate); ok && len(op.Qubits) != want {
			return fmt.Errorf("op %d (%s): takes %d qubit operand(s), got %d",
				i, op.Gate, want, len(op.Qubits))
		}
		seen := make(map[int]bool, len(op.Qubits))
		for _, q := range op.Qubits {
			if q < 0 || q >= c.Qubits {
				return fmt.Errorf("op %d (%s): qubit %d out of range [0,%d)", i, op.Gate, q, c.Qubits)
			}
			if seen[q] {
				return fmt.Errorf("op %d (%s): repeated qubit %d", i, op.Gate, q)
			}
			seen[q] = true
		}
	}
	return nil
}
