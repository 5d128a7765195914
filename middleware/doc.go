// Package middleware provides composable decorators for backends.
//
// Each decorator wraps a [qhal.Backend] and returns another one, so they
// stack in any order:
//
//	b = middleware.Logging(b, logger)
//	b = middleware.Tracing[*sim.Circuit](b)
//	b = middleware.Metrics[*sim.Circuit](b)
//
// # Built-in Decorators
//
//   - [Logging] — logs each backend call with duration and outcome
//   - [Tracing] — wraps each call in an OpenTelemetry span
//   - [Metrics] — records per-call duration histograms and counters
//
// Decorators never change a call's semantics: arguments, results, and
// errors pass through untouched.
package middleware
