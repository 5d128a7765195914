package sim

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"strings"

	"github.com/hiq-lab/qhal/result"
)

// statevector holds 2^n complex amplitudes. Qubit q maps to bit q of
// the state index, so in rendered bitstrings the rightmost character is
// qubit 0.
type statevector []complex128

func newStatevector(qubits int) statevector {
	sv := make(statevector, 1<<qubits)
	sv[0] = 1
	return sv
}

// run applies every op of the circuit in order.
func (sv statevector) run(c *Circuit) error {
	for i, op := range c.Ops {
		if err := sv.applyOp(op); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

func (sv statevector) applyOp(op Op) error {
	// Single-qubit gates.
	if m, ok := gateMatrix1(op.Gate, op.Params); ok {
		if len(op.Qubits) != 1 {
			return fmt.Errorf("%s expects 1 qubit, got %d", op.Gate, len(op.Qubits))
		}
		sv.apply1(m, op.Qubits[0])
		return nil
	}

	// Controlled single-qubit gates: c<gate>.
	if base, found := strings.CutPrefix(op.Gate, "c"); found {
		if m, ok := gateMatrix1(base, op.Params); ok {
			if len(op.Qubits) != 2 {
				return fmt.Errorf("%s expects 2 qubits, got %d", op.Gate, len(op.Qubits))
			}
			sv.applyControlled1(m, op.Qubits[0], op.Qubits[1])
			return nil
		}
	}

	switch op.Gate {
	case "swap", "iswap", "rxx", "ryy", "rzz":
		if len(op.Qubits) != 2 {
			return fmt.Errorf("%s expects 2 qubits, got %d", op.Gate, len(op.Qubits))
		}
		m, err := gateMatrix2(op.Gate, op.Params)
		if err != nil {
			return err
		}
		sv.apply2(m, op.Qubits[0], op.Qubits[1])
		return nil

	case "ccx":
		if len(op.Qubits) != 3 {
			return fmt.Errorf("ccx expects 3 qubits, got %d", len(op.Qubits))
		}
		sv.applyCCX(op.Qubits[0], op.Qubits[1], op.Qubits[2])
		return nil

	case "cswap":
		if len(op.Qubits) != 3 {
			return fmt.Errorf("cswap expects 3 qubits, got %d", len(op.Qubits))
		}
		sv.applyCSwap(op.Qubits[0], op.Qubits[1], op.Qubits[2])
		return nil
	}

	return fmt.Errorf("unknown gate %q", op.Gate)
}

// ── Gate matrices ─────────────────────────────────────────────────

func gateMatrix1(gate string, params []float64) ([2][2]complex128, bool) {
	invSqrt2 := complex(1/math.Sqrt2, 0)

	param := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}

	switch gate {
	case "id":
		return [2][2]complex128{{1, 0}, {0, 1}}, true
	case "x":
		return [2][2]complex128{{0, 1}, {1, 0}}, true
	case "y":
		return [2][2]complex128{{0, -1i}, {1i, 0}}, true
	case "z":
		return [2][2]complex128{{1, 0}, {0, -1}}, true
	case "h":
		return [2][2]complex128{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}, true
	case "s":
		return [2][2]complex128{{1, 0}, {0, 1i}}, true
	case "sdg":
		return [2][2]complex128{{1, 0}, {0, -1i}}, true
	case "t":
		return [2][2]complex128{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}}, true
	case "tdg":
		return [2][2]complex128{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}}, true
	case "sx":
		return [2][2]complex128{
			{0.5 + 0.5i, 0.5 - 0.5i},
			{0.5 - 0.5i, 0.5 + 0.5i},
		}, true
	case "sxdg":
		return [2][2]complex128{
			{0.5 - 0.5i, 0.5 + 0.5i},
			{0.5 + 0.5i, 0.5 - 0.5i},
		}, true
	case "rx":
		c, s := halfAngle(param(0))
		return [2][2]complex128{{c, -1i * s}, {-1i * s, c}}, true
	case "ry":
		c, s := halfAngle(param(0))
		return [2][2]complex128{{c, -s}, {s, c}}, true
	case "rz":
		theta := param(0)
		return [2][2]complex128{
			{cmplx.Exp(complex(0, -theta/2)), 0},
			{0, cmplx.Exp(complex(0, theta/2))},
		}, true
	case "p":
		return [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, param(0)))}}, true
	case "u":
		theta, phi, lambda := param(0), param(1), param(2)
		c, s := halfAngle(theta)
		return [2][2]complex128{
			{c, -cmplx.Exp(complex(0, lambda)) * s},
			{cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lambda)) * c},
		}, true
	case "prx":
		// Phased RX: rotation by theta about the axis at angle phi in
		// the XY plane.
		theta, phi := param(0), param(1)
		c, s := halfAngle(theta)
		return [2][2]complex128{
			{c, -1i * cmplx.Exp(complex(0, -phi)) * s},
			{-1i * cmplx.Exp(complex(0, phi)) * s, c},
		}, true
	}
	return [2][2]complex128{}, false
}

func gateMatrix2(gate string, params []float64) ([4][4]complex128, error) {
	param := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}

	switch gate {
	case "swap":
		return [4][4]complex128{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, nil
	case "iswap":
		return [4][4]complex128{
			{1, 0, 0, 0},
			{0, 0, 1i, 0},
			{0, 1i, 0, 0},
			{0, 0, 0, 1},
		}, nil
	case "rxx":
		c, s := halfAngle(param(0))
		is := -1i * s
		return [4][4]complex128{
			{c, 0, 0, is},
			{0, c, is, 0},
			{0, is, c, 0},
			{is, 0, 0, c},
		}, nil
	case "ryy":
		c, s := halfAngle(param(0))
		is := 1i * s
		return [4][4]complex128{
			{c, 0, 0, is},
			{0, c, -is, 0},
			{0, -is, c, 0},
			{is, 0, 0, c},
		}, nil
	case "rzz":
		theta := param(0)
		neg := cmplx.Exp(complex(0, -theta/2))
		pos := cmplx.Exp(complex(0, theta/2))
		return [4][4]complex128{
			{neg, 0, 0, 0},
			{0, pos, 0, 0},
			{0, 0, pos, 0},
			{0, 0, 0, neg},
		}, nil
	}
	return [4][4]complex128{}, fmt.Errorf("unknown two-qubit gate %q", gate)
}

func halfAngle(theta float64) (complex128, complex128) {
	return complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
}

// ── Application kernels ───────────────────────────────────────────

func (sv statevector) apply1(m [2][2]complex128, q int) {
	bit := 1 << q
	for i := range sv {
		if i&bit == 0 {
			a, b := sv[i], sv[i|bit]
			sv[i] = m[0][0]*a + m[0][1]*b
			sv[i|bit] = m[1][0]*a + m[1][1]*b
		}
	}
}

func (sv statevector) applyControlled1(m [2][2]complex128, control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range sv {
		if i&cbit != 0 && i&tbit == 0 {
			a, b := sv[i], sv[i|tbit]
			sv[i] = m[0][0]*a + m[0][1]*b
			sv[i|tbit] = m[1][0]*a + m[1][1]*b
		}
	}
}

// apply2 applies a 4x4 matrix in the basis |q1 q0>. All gates routed
// here are symmetric under qubit exchange.
func (sv statevector) apply2(m [4][4]complex128, q0, q1 int) {
	b0, b1 := 1<<q0, 1<<q1
	for i := range sv {
		if i&b0 == 0 && i&b1 == 0 {
			idx := [4]int{i, i | b0, i | b1, i | b0 | b1}
			var in [4]complex128
			for k := range idx {
				in[k] = sv[idx[k]]
			}
			for r := range idx {
				sv[idx[r]] = m[r][0]*in[0] + m[r][1]*in[1] + m[r][2]*in[2] + m[r][3]*in[3]
			}
		}
	}
}

func (sv statevector) applyCCX(c1, c2, target int) {
	b1, b2, bt := 1<<c1, 1<<c2, 1<<target
	for i := range sv {
		if i&b1 != 0 && i&b2 != 0 && i&bt == 0 {
			sv[i], sv[i|bt] = sv[i|bt], sv[i]
		}
	}
}

func (sv statevector) applyCSwap(control, a, b int) {
	cbit, ba, bb := 1<<control, 1<<a, 1<<b
	for i := range sv {
		if i&cbit != 0 && i&ba != 0 && i&bb == 0 {
			sv[i], sv[i^ba^bb] = sv[i^ba^bb], sv[i]
		}
	}
}

// ── Sampling ──────────────────────────────────────────────────────

// sample draws shots measurement outcomes from the state's probability
// distribution and renders them as bitstrings (rightmost char = qubit 0).
func (sv statevector) sample(rng *rand.Rand, qubits, shots int) *result.Counts {
	cum := make([]float64, len(sv))
	total := 0.0
	for i, amp := range sv {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
		cum[i] = total
	}

	counts := result.NewCounts()
	for range shots {
		r := rng.Float64() * total
		idx := sort.SearchFloat64s(cum, r)
		if idx >= len(sv) {
			idx = len(sv) - 1
		}
		counts.Add(bitstring(idx, qubits), 1)
	}
	return counts
}

func bitstring(idx, qubits int) string {
	buf := make([]byte, qubits)
	for q := 0; q < qubits; q++ {
		if idx&(1<<q) != 0 {
			buf[qubits-1-q] = '1'
		} else {
			buf[qubits-1-q] = '0'
		}
	}
	return string(buf)
}
