// Package qhal defines a vendor-neutral contract for driving heterogeneous
// quantum backends — hardware devices and simulators — through one uniform
// interface. Orchestration code submits circuits, polls job status, and
// retrieves measurement results without knowing which backend executes them.
//
// QHAL is a library, not a service. Implement the Backend interface for
// your device or cloud API, or use the bundled sim package for a local
// reference backend.
//
// # Quick Start
//
//	b := sim.New(sim.WithQubits(5))
//	defer b.Close()
//
//	c := sim.NewCircuit(2).H(0).CX(0, 1)
//
//	jobID, err := b.Submit(ctx, c, 1000)
//	if err != nil { ... }
//
//	res, err := qhal.Wait(ctx, b, jobID)
//	if err != nil { ... }
//	fmt.Println(res.Counts.Sorted())
//
// # Architecture
//
// The Backend interface is generic over an opaque circuit type C. QHAL
// never inspects circuits; backends interpret them. Supporting packages:
//
//   - capability — hardware introspection (gate sets, topologies, noise)
//   - job — job identifiers and the lifecycle state machine
//   - result — measurement counts and execution results
//   - backoff — retry strategies for transient failures
//   - middleware — logging, tracing, and metrics decorators
//   - sim — in-process simulator backend with pluggable job stores
//
// Every operation fails with exactly one taxonomy kind (see Kind); callers
// branch on kind, never on message text. Transient kinds are safe to retry
// with backoff, permanent and terminal kinds are not.
package qhal
