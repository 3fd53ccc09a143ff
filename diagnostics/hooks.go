package diagnostics

import (
	"context"

	"github.com/hollow-works/retrack/core"
)

// Options bundles the diagnostics collaborators a Hooks call wires
// together. A zero Options is valid and produces no-op hooks — nothing
// is collected unless DevMode is true, matching the "elided when
// Options.DevMode is false" rule: diagnostics should never cost
// anything on a production build that doesn't ask for it.
type Options struct {
	DevMode bool
	Metrics *Metrics
	Tracer  *Tracer
	Ctx     context.Context
}

// Hooks builds the OnTrack/OnTrigger/OnStop callbacks for
// core.EffectOptions from opts. When opts.DevMode is false, every
// returned callback is nil, so core never even calls through an empty
// closure.
func Hooks(opts Options) (onTrack, onTrigger func(dep *core.Dep, key core.Key), onStop func()) {
	if !opts.DevMode {
		return nil, nil, nil
	}

	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	onTrack = func(_ *core.Dep, key core.Key) {
		if opts.Tracer != nil {
			opts.Tracer.TrackSpan(ctx, key, "get")
		}
	}

	onTrigger = func(dep *core.Dep, key core.Key) {
		if opts.Tracer != nil {
			opts.Tracer.TriggerSpan(ctx, key, "trigger")
		}
		if opts.Metrics != nil && dep != nil {
			opts.Metrics.ObserveTriggerFanOut(dep.Len())
		}
	}

	onStop = func() {
		if opts.Metrics != nil {
			opts.Metrics.ObserveScopeDisposal()
		}
	}

	return onTrack, onTrigger, onStop
}

// InstrumentedEffectOptions returns a core.EffectOptions with its
// OnTrack/OnTrigger/OnStop fields populated from Hooks(opts), leaving
// every other field zero for the caller to fill in.
func InstrumentedEffectOptions(opts Options) core.EffectOptions {
	onTrack, onTrigger, onStop := Hooks(opts)
	return core.EffectOptions{
		OnTrack:   onTrack,
		OnTrigger: onTrigger,
		OnStop:    onStop,
	}
}
