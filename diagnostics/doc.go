// Package diagnostics wires the engine's onTrack/onTrigger/onStop
// development hooks to OpenTelemetry spans and Prometheus counters.
// Both integrations are strictly optional and host-driven: diagnostics
// never opens a network listener or a collector connection itself, and
// every hook is a nil function (so core never pays for an empty
// closure call) unless Options.DevMode is true.
package diagnostics
