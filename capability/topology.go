package capability

// TopologyKind tags the shape of a qubit connectivity graph.
type TopologyKind string

const (
	// KindFullyConnected is all-to-all connectivity.
	KindFullyConnected TopologyKind = "fully_connected"
	// KindLinear is a linear chain.
	KindLinear TopologyKind = "linear"
	// KindStar connects a center qubit to all others.
	KindStar TopologyKind = "star"
	// KindGrid is a 2D rectangular grid.
	KindGrid TopologyKind = "grid"
	// KindHeavyHex is the heavy-hex lattice used by IBM processors.
	KindHeavyHex TopologyKind = "heavy_hex"
	// KindNeutralAtom is a zoned neutral-atom layout.
	KindNeutralAtom TopologyKind = "neutral_atom"
	// KindCustom is an arbitrary edge list.
	KindCustom TopologyKind = "custom"
)

// Edge is an undirected coupling between two qubit indices.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Topology is the connectivity graph of physical qubits. All edges are
// undirected: if (a, b) is present, both a→b and b→a are valid two-qubit
// interactions.
type Topology struct {
	Kind  TopologyKind `json:"kind"`
	Edges []Edge       `json:"edges"`
}

// IsConnected reports whether qubits q1 and q2 are directly coupled,
// in either orientation.
func (t Topology) IsConnected(q1, q2 int) bool {
	for _, e := range t.Edges {
		if (e.A == q1 && e.B == q2) || (e.A == q2 && e.B == q1) {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────
// Constructors
// ──────────────────────────────────────────────────

// Linear returns a linear chain over n qubits: 0–1, 1–2, ...
func Linear(n int) Topology {
	edges := make([]Edge, 0, max(n-1, 0))
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{A: i, B: i + 1})
	}
	return Topology{Kind: KindLinear, Edges: edges}
}

// Star returns a star over n qubits with qubit 0 at the center.
func Star(n int) Topology {
	edges := make([]Edge, 0, max(n-1, 0))
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{A: 0, B: i})
	}
	return Topology{Kind: KindStar, Edges: edges}
}

// Full returns all-to-all connectivity over n qubits.
func Full(n int) Topology {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{A: i, B: j})
		}
	}
	return Topology{Kind: KindFullyConnected, Edges: edges}
}

// Grid returns a rows×cols rectangular grid. Node (r, c) has index
// r*cols+c and connects to its right and down neighbors only — no
// wraparound, no diagonals.
func Grid(rows, cols int) Topology {
	var edges []Edge
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if c+1 < cols {
				edges = append(edges, Edge{A: idx, B: idx + 1})
			}
			if r+1 < rows {
				edges = append(edges, Edge{A: idx, B: idx + cols})
			}
		}
	}
	return Topology{Kind: KindGrid, Edges: edges}
}

// Custom returns a topology from an arbitrary edge list.
func Custom(edges []Edge) Topology {
	return Topology{Kind: KindCustom, Edges: edges}
}

// NeutralAtom returns a zoned neutral-atom topology. Qubits within a
// zone are fully connected (Rydberg interaction radius); qubits across
// zones require shuttling and are not coupled here.
func NeutralAtom(numQubits, zones int) Topology {
	if zones < 1 {
		zones = 1
	}
	perZone := numQubits / zones

	var edges []Edge
	for z := 0; z < zones; z++ {
		start := z * perZone
		end := start + perZone
		if z == zones-1 {
			end = numQubits
		}
		for i := start; i < end; i++ {
			for j := i + 1; j < end; j++ {
				edges = append(edges, Edge{A: i, B: j})
			}
		}
	}
	return Topology{Kind: KindNeutralAtom, Edges: edges}
}
