package diagnostics

import (
	"context"
	"testing"
)

func TestTracerSpansDoNotPanicWithNilTracer(t *testing.T) {
	tracer := NewTracer(nil)
	tracer.TrackSpan(context.Background(), "count", "get")
	tracer.TriggerSpan(context.Background(), 5, "set")
}

func TestToAttrString(t *testing.T) {
	cases := []struct {
		key  any
		want string
	}{
		{"name", "name"},
		{5, "5"},
		{nil, "<nil>"},
	}
	for _, c := range cases {
		if got := toAttrString(c.key); got != c.want {
			t.Errorf("toAttrString(%v) = %q, want %q", c.key, got, c.want)
		}
	}
}
