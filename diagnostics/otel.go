package diagnostics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is the tracer name used when a host doesn't supply
// its own.
const defaultTracerName = "retrack"

// Tracer wraps a host-supplied trace.Tracer with the attribute
// conventions diagnostics uses for onTrack/onTrigger spans. The engine
// itself never creates a Tracer (and never opens a collector
// connection) — the host owns its tracer provider and hands the
// Tracer in, per spec.md's no-networking non-goal.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer wraps tracer. If tracer is nil, a no-op tracer from
// trace.NewNoopTracerProvider is used; the global TracerProvider is not
// consulted.
func NewTracer(tracer trace.Tracer) *Tracer {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer(defaultTracerName)
	}
	return &Tracer{tracer: tracer}
}

// TrackSpan starts (and immediately ends) a span describing one Track
// call, recording the property key and read kind as span attributes.
func (t *Tracer) TrackSpan(ctx context.Context, key any, op string) {
	_, span := t.tracer.Start(ctx, "retrack.track", trace.WithAttributes(
		attribute.String("retrack.key", toAttrString(key)),
		attribute.String("retrack.op", op),
	))
	span.End()
}

// TriggerSpan starts (and immediately ends) a span describing one
// Trigger call.
func (t *Tracer) TriggerSpan(ctx context.Context, key any, op string) {
	_, span := t.tracer.Start(ctx, "retrack.trigger", trace.WithAttributes(
		attribute.String("retrack.key", toAttrString(key)),
		attribute.String("retrack.op", op),
	))
	span.End()
}

// toAttrString renders a Track/Trigger key (a string property name, an
// integer slice index, or one of the IterateKey/MapKeyIterateKey
// sentinels) as a span attribute value.
func toAttrString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	if key == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", key)
}
