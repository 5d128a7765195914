// Package capability describes what a quantum backend can do: qubit
// count, supported gates, connectivity topology, shot limits, and noise
// characteristics. Compilers use these values to decide transpilation
// strategy; orchestrators use them for routing decisions.
//
// A Capabilities value is a read-only snapshot of the backend's current
// configuration. Backends return it synchronously from cached state and
// callers must not mutate it.
package capability

import "math"

// Capabilities is the static hardware description of a quantum backend.
type Capabilities struct {
	// Name of the backend.
	Name string `json:"name"`
	// NumQubits available.
	NumQubits int `json:"num_qubits"`
	// GateSet supported, OpenQASM 3 naming.
	GateSet GateSet `json:"gate_set"`
	// Topology of qubit connectivity. Edges are undirected.
	Topology Topology `json:"topology"`
	// MaxShots per job.
	MaxShots int `json:"max_shots"`
	// IsSimulator is true when the backend is not real hardware.
	IsSimulator bool `json:"is_simulator"`
	// Features are free-form tags for additional backend features.
	Features []string `json:"features,omitempty"`
	// NoiseProfile holds device-wide noise averages, if characterized.
	NoiseProfile *NoiseProfile `json:"noise_profile,omitempty"`
}

// WithTopology returns a copy with the topology replaced by real
// hardware connectivity.
func (c Capabilities) WithTopology(t Topology) Capabilities {
	c.Topology = t
	return c
}

// WithNoiseProfile returns a copy with the noise profile attached.
func (c Capabilities) WithNoiseProfile(p NoiseProfile) Capabilities {
	c.NoiseProfile = &p
	return c
}

// ──────────────────────────────────────────────────
// Presets
// ──────────────────────────────────────────────────

// Simulator returns capabilities for a generic simulator: universal
// gates, full connectivity, no noise.
func Simulator(numQubits int) Capabilities {
	return Capabilities{
		Name:        "simulator",
		NumQubits:   numQubits,
		GateSet:     UniversalGates(),
		Topology:    Full(numQubits),
		MaxShots:    100_000,
		IsSimulator: true,
		Features:    []string{"statevector", "unitary"},
	}
}

// IQM returns capabilities for IQM devices (e.g. Garnet, Adonis).
func IQM(name string, numQubits int) Capabilities {
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   IQMGates(),
		Topology:  Star(numQubits),
		MaxShots:  20_000,
	}
}

// IBMEagle returns capabilities for IBM Eagle processors (127 qubits,
// ECR native). The topology starts empty; use WithTopology to attach
// real heavy-hex connectivity.
func IBMEagle(name string, numQubits int) Capabilities {
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   IBMEagleGates(),
		Topology:  Custom(nil),
		MaxShots:  100_000,
		Features:  []string{"dynamic_circuits"},
	}
}

// IBMHeron returns capabilities for IBM Heron processors (156 qubits,
// CZ native). The topology starts empty; use WithTopology to attach
// real heavy-hex connectivity.
func IBMHeron(name string, numQubits int) Capabilities {
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   IBMHeronGates(),
		Topology:  Custom(nil),
		MaxShots:  100_000,
		Features:  []string{"dynamic_circuits"},
	}
}

// Rigetti returns capabilities for Rigetti superconducting devices,
// laid out on a square grid.
func Rigetti(name string, numQubits int) Capabilities {
	side := int(math.Ceil(math.Sqrt(float64(numQubits))))
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   RigettiGates(),
		Topology:  Grid(side, side),
		MaxShots:  100_000,
	}
}

// IonQ returns capabilities for IonQ trapped-ion devices, which are
// fully connected.
func IonQ(name string, numQubits int) Capabilities {
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   IonQGates(),
		Topology:  Full(numQubits),
		MaxShots:  100_000,
	}
}

// NeutralAtomDevice returns capabilities for a zoned neutral-atom device
// (e.g. planqc, Pasqal).
func NeutralAtomDevice(name string, numQubits, zones int) Capabilities {
	return Capabilities{
		Name:      name,
		NumQubits: numQubits,
		GateSet:   NeutralAtomGates(),
		Topology:  NeutralAtom(numQubits, zones),
		MaxShots:  100_000,
		Features:  []string{"shuttling", "zoned"},
	}
}
