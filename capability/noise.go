package capability

// NoiseProfile holds device-wide noise averages reported by a backend —
// aggregate characterization numbers suitable for routing and
// coarse-grained compilation decisions, not per-qubit calibration.
//
// Fidelity values are in [0.0, 1.0] where 1.0 means perfect. Time values
// (T1, T2, GateTime) are in microseconds. A nil field means "unknown",
// not zero.
type NoiseProfile struct {
	// T1 is the relaxation time, device average.
	T1 *float64 `json:"t1,omitempty"`
	// T2 is the dephasing time, device average.
	T2 *float64 `json:"t2,omitempty"`
	// SingleQubitFidelity is the average single-qubit gate fidelity.
	SingleQubitFidelity *float64 `json:"single_qubit_fidelity,omitempty"`
	// TwoQubitFidelity is the average two-qubit gate fidelity.
	TwoQubitFidelity *float64 `json:"two_qubit_fidelity,omitempty"`
	// ReadoutFidelity is the average readout fidelity.
	ReadoutFidelity *float64 `json:"readout_fidelity,omitempty"`
	// GateTime is the average gate execution time.
	GateTime *float64 `json:"gate_time,omitempty"`
}

// Float returns a pointer to v, for populating optional profile fields.
func Float(v float64) *float64 { return &v }
