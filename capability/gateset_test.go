package capability_test

import (
	"testing"

	"github.com/hiq-lab/qhal/capability"
)

func TestGateSet_Contains(t *testing.T) {
	gs := capability.UniversalGates()

	tests := []struct {
		gate string
		want bool
	}{
		{"h", true},
		{"cx", true},
		{"ccx", true},  // three-qubit bucket
		{"CZ", true},   // vendor casing is normalized
		{" rz ", true}, // stray whitespace is normalized
		{"ecr", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := gs.Contains(tt.gate); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.gate, got, tt.want)
		}
	}
}

func TestGateSet_Arity(t *testing.T) {
	gs := capability.UniversalGates()

	tests := []struct {
		gate  string
		arity int
		known bool
	}{
		{"h", 1, true},
		{"cx", 2, true},
		{"cswap", 3, true},
		{"CCX", 3, true}, // casing normalized
		{"ecr", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		arity, known := gs.Arity(tt.gate)
		if arity != tt.arity || known != tt.known {
			t.Errorf("Arity(%q) = %d, %v; want %d, %v", tt.gate, arity, known, tt.arity, tt.known)
		}
	}
}

func TestGateSet_IsNative(t *testing.T) {
	// Explicit native list: membership in Native only.
	iqm := capability.IQMGates()
	if !iqm.IsNative("cz") {
		t.Error(`IQMGates().IsNative("cz") = false, want true`)
	}
	if !iqm.IsNative("prx") {
		t.Error(`IQMGates().IsNative("prx") = false, want true`)
	}

	// Empty native list falls back to Contains.
	universal := capability.UniversalGates()
	if !universal.IsNative("cz") {
		t.Error(`UniversalGates().IsNative("cz") = false, want true`)
	}
	if universal.IsNative("ecr") {
		t.Error(`UniversalGates().IsNative("ecr") = true, want false`)
	}
}

func TestGateSet_IsNative_SupportedButNotNative(t *testing.T) {
	heron := capability.IBMHeronGates()
	if !heron.Contains("rzz") {
		t.Fatal("heron should support rzz")
	}
	// Every heron gate is also native.
	if !heron.IsNative("rzz") {
		t.Error("heron rzz should be native")
	}

	gs := capability.GateSet{
		SingleQubit: []string{"h", "rx"},
		TwoQubit:    []string{"cx"},
		Native:      []string{"rx", "cx"},
	}
	if gs.IsNative("h") {
		t.Error("h is supported but not native")
	}
}

func TestNormalizeGate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CZ", "cz"},
		{"Rz", "rz"},
		{"  ECR\t", "ecr"},
		{"ccx", "ccx"},
	}
	for _, tt := range tests {
		if got := capability.NormalizeGate(tt.in); got != tt.want {
			t.Errorf("NormalizeGate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
