package diagnostics

import (
	"testing"

	"github.com/hollow-works/retrack/core"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHooksNilWhenDevModeOff(t *testing.T) {
	onTrack, onTrigger, onStop := Hooks(Options{})
	if onTrack != nil || onTrigger != nil || onStop != nil {
		t.Fatalf("Hooks with DevMode=false should return nil callbacks so core never calls through them")
	}
}

func TestHooksWireMetricsOnTrigger(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegisterer(reg))

	_, onTrigger, _ := Hooks(Options{DevMode: true, Metrics: m})
	if onTrigger == nil {
		t.Fatalf("onTrigger should be non-nil when DevMode is true")
	}

	dep := core.NewDep()
	onTrigger(dep, "count") // must not panic
}

func TestInstrumentedEffectOptionsFeedsRealEffect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegisterer(reg))

	opts := InstrumentedEffectOptions(Options{DevMode: true, Metrics: m})

	dep := core.NewDep()
	runs := 0
	core.NewEffect(func() {
		runs++
		core.TrackEffects(dep)
	}, opts)

	core.TriggerEffects(dep)
	if runs != 2 {
		t.Fatalf("instrumented effect should still rerun normally, runs=%d", runs)
	}
}
