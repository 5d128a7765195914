package capability_test

import (
	"testing"

	"github.com/hiq-lab/qhal/capability"
)

func TestSimulator(t *testing.T) {
	caps := capability.Simulator(10)
	if !caps.IsSimulator {
		t.Error("Simulator preset should set IsSimulator")
	}
	if caps.NumQubits != 10 {
		t.Errorf("NumQubits = %d, want 10", caps.NumQubits)
	}
	if !caps.GateSet.Contains("h") {
		t.Error("universal gate set should contain h")
	}
}

func TestIQM(t *testing.T) {
	caps := capability.IQM("Garnet", 20)
	if caps.IsSimulator {
		t.Error("IQM preset should not set IsSimulator")
	}
	if caps.MaxShots != 20_000 {
		t.Errorf("MaxShots = %d, want 20000", caps.MaxShots)
	}
	if !caps.GateSet.Contains("prx") || !caps.GateSet.Contains("cz") {
		t.Error("IQM gate set should contain prx and cz")
	}
	if caps.GateSet.Contains("cx") {
		t.Error("IQM gate set should not contain cx")
	}
	if caps.Topology.Kind != capability.KindStar {
		t.Errorf("Topology.Kind = %s, want %s", caps.Topology.Kind, capability.KindStar)
	}
}

func TestRigetti_GridSide(t *testing.T) {
	caps := capability.Rigetti("Ankaa-2", 84)
	if caps.Topology.Kind != capability.KindGrid {
		t.Errorf("Topology.Kind = %s, want grid", caps.Topology.Kind)
	}
	// ceil(sqrt(84)) = 10: node 0 couples right to 1 and down to 10.
	if !caps.Topology.IsConnected(0, 1) || !caps.Topology.IsConnected(0, 10) {
		t.Error("grid should couple node 0 right and down")
	}
}

func TestWithNoiseProfile(t *testing.T) {
	base := capability.IonQ("Forte", 36)
	if base.NoiseProfile != nil {
		t.Fatal("preset should not carry a noise profile")
	}
	caps := base.WithNoiseProfile(capability.NoiseProfile{
		T1:               capability.Float(100.0),
		TwoQubitFidelity: capability.Float(0.995),
	})
	if caps.NoiseProfile == nil || *caps.NoiseProfile.T1 != 100.0 {
		t.Error("WithNoiseProfile should attach the profile")
	}
	// Unset fields stay unknown, not zero.
	if caps.NoiseProfile.T2 != nil {
		t.Error("T2 should remain nil")
	}
	// The original snapshot is untouched.
	if base.NoiseProfile != nil {
		t.Error("WithNoiseProfile must not mutate the receiver")
	}
}

func TestWithTopology(t *testing.T) {
	caps := capability.IBMHeron("ibm_torino", 133)
	if len(caps.Topology.Edges) != 0 {
		t.Fatal("IBM preset should start with an empty topology")
	}
	caps = caps.WithTopology(capability.Linear(133))
	if !caps.Topology.IsConnected(0, 1) {
		t.Error("replaced topology should be in effect")
	}
}
