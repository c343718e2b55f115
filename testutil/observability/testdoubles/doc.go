// Package testdoubles provides spies for the catalog observability interfaces.
//
// The spies capture logging and metrics calls so tests can verify the
// instrumentation of the bridge and the catalog without a telemetry backend:
//   - ContextualLoggerSpy: captures structured logging with context
//   - MetricsCollectorSpy: captures duration, counter and gauge recordings
package testdoubles
