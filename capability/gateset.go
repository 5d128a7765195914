package capability

import "strings"

// GateSet describes the gate operations a backend supports, partitioned
// by arity. Gate names follow the OpenQASM 3 convention: lowercase
// identifiers such as "rz", "cz", "ccx".
//
// The Native list identifies gates that execute without decomposition.
// An empty Native list means all supported gates are native — the
// typical case for simulators.
type GateSet struct {
	SingleQubit []string `json:"single_qubit"`
	TwoQubit    []string `json:"two_qubit"`
	ThreeQubit  []string `json:"three_qubit,omitempty"`
	Native      []string `json:"native"`
}

// NormalizeGate maps a vendor-specific gate name onto the lowercase
// OpenQASM 3 vocabulary. Backends must normalize names before populating
// a GateSet or checking membership.
func NormalizeGate(gate string) string {
	return strings.ToLower(strings.TrimSpace(gate))
}

// Contains reports whether the gate is supported at any arity.
func (g GateSet) Contains(gate string) bool {
	gate = NormalizeGate(gate)
	return contains(g.SingleQubit, gate) ||
		contains(g.TwoQubit, gate) ||
		contains(g.ThreeQubit, gate)
}

// Arity returns the operand count for a supported gate (1, 2, or 3)
// and whether the gate is in the set at all.
func (g GateSet) Arity(gate string) (int, bool) {
	gate = NormalizeGate(gate)
	switch {
	case contains(g.SingleQubit, gate):
		return 1, true
	case contains(g.TwoQubit, gate):
		return 2, true
	case contains(g.ThreeQubit, gate):
		return 3, true
	}
	return 0, false
}

// IsNative reports whether the gate executes without decomposition.
// When the Native list is empty every supported gate counts as native.
func (g GateSet) IsNative(gate string) bool {
	if len(g.Native) == 0 {
		return g.Contains(gate)
	}
	return contains(g.Native, NormalizeGate(gate))
}

func contains(gates []string, gate string) bool {
	for _, g := range gates {
		if g == gate {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────
// Presets
// ──────────────────────────────────────────────────

// IQMGates returns the IQM gate set (PRX + CZ native).
func IQMGates() GateSet {
	return GateSet{
		SingleQubit: []string{"prx"},
		TwoQubit:    []string{"cz"},
		Native:      []string{"prx", "cz"},
	}
}

// IBMEagleGates returns the IBM Eagle gate set (ECR, RZ, SX, X native).
func IBMEagleGates() GateSet {
	return GateSet{
		SingleQubit: []string{"rz", "sx", "x", "id"},
		TwoQubit:    []string{"ecr"},
		Native:      []string{"rz", "sx", "x", "ecr"},
	}
}

// IBMHeronGates returns the IBM Heron gate set (CZ, RZ, SX, X native,
// plus RX, RZZ, H).
func IBMHeronGates() GateSet {
	return GateSet{
		SingleQubit: []string{"rz", "sx", "x", "id", "rx", "h"},
		TwoQubit:    []string{"cz", "rzz"},
		Native:      []string{"rz", "sx", "x", "cz", "id", "rx", "h", "rzz"},
	}
}

// UniversalGates returns the universal gate set covering all standard
// gates, typical for simulators. Native is empty: everything is native.
func UniversalGates() GateSet {
	return GateSet{
		SingleQubit: []string{
			"id", "x", "y", "z", "h", "s", "sdg", "t", "tdg",
			"sx", "sxdg", "rx", "ry", "rz", "p", "u", "prx",
		},
		TwoQubit: []string{
			"cx", "cy", "cz", "ch", "swap", "iswap",
			"crx", "cry", "crz", "cp", "rxx", "ryy", "rzz",
		},
		ThreeQubit: []string{"ccx", "cswap"},
	}
}

// RigettiGates returns the Rigetti gate set (RX, RZ, CZ native).
func RigettiGates() GateSet {
	return GateSet{
		SingleQubit: []string{"rx", "rz"},
		TwoQubit:    []string{"cz"},
		Native:      []string{"rx", "rz", "cz"},
	}
}

// IonQGates returns the IonQ gate set (RX, RY, RZ, XX native).
func IonQGates() GateSet {
	return GateSet{
		SingleQubit: []string{"rx", "ry", "rz"},
		TwoQubit:    []string{"xx"},
		Native:      []string{"rx", "ry", "rz", "xx"},
	}
}

// NeutralAtomGates returns the neutral-atom gate set (RZ, RX, RY, CZ
// native).
func NeutralAtomGates() GateSet {
	return GateSet{
		SingleQubit: []string{"rz", "rx", "ry"},
		TwoQubit:    []string{"cz"},
		Native:      []string{"rz", "rx", "ry", "cz"},
	}
}
