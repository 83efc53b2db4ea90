// Package emit provides event emission and observability for search execution.
package emit

// Emitter receives observability events from a search call.
//
// Emitters enable pluggable observability backends:
//   - Logging: stdout, files (LogEmitter)
//   - Distributed tracing: OpenTelemetry (OTelEmitter)
//   - In-memory capture for tests and CLI traces (BufferedEmitter)
//
// A single Engine may serve concurrent Search calls, so implementations must be
// safe for concurrent use. Emit must not block the search loop for long and must
// not panic.
type Emitter interface {
	Emit(event Event)
}
