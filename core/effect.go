package core

// Cleanup is an optional side-channel an onStop callback can use; kept as
// a named type purely for readability at call sites.
type Cleanup = func()

// EffectOptions configures an Effect created via NewEffect.
type EffectOptions struct {
	// Lazy, if true, skips the initial run; the caller must invoke the
	// returned Runner explicitly to execute fn for the first time.
	Lazy bool

	// Scheduler, if set, is invoked instead of running the effect
	// synchronously when one of its Deps fires. The scheduler decides
	// when (or whether) to actually call the runner.
	Scheduler func()

	// Scope pins the effect to a specific EffectScope instead of the
	// scope active on the creating goroutine.
	Scope *EffectScope

	// AllowRecurse permits a trigger to re-invoke the effect that is
	// itself currently running (see triggerEffect in track_trigger.go).
	AllowRecurse bool

	// Computed marks this effect as backing a computed value. Computed
	// effects are notified before non-computed effects in TriggerEffects
	// (spec.md §4.4's two-phase ordering).
	Computed bool

	// OnStop, OnTrack, and OnTrigger are development-only diagnostic
	// callbacks; production builds should never populate these.
	OnStop    func()
	OnTrack   func(dep *Dep, key Key)
	OnTrigger func(dep *Dep, key Key)
}

// Effect wraps a user function whose re-execution is driven by reads and
// writes of tracked properties. It owns the list of Deps it currently
// subscribes to and knows how to (re-)execute itself with tracking
// enabled, reconciling its subscriptions against the previous run via the
// bitmask protocol described in dep.go.
type Effect struct {
	fn        func()
	scheduler func()
	scope     *EffectScope

	deps []*Dep

	// parent is the effect that was active when this effect's current
	// run started, forming a chain run() walks to guard against an
	// effect invoking itself synchronously through its own fn. With
	// allowRecurse set, run() lets such a nested run through instead.
	parent *Effect

	active       bool
	computed     bool
	allowRecurse bool
	deferStop    bool

	onStop    func()
	onTrack   func(dep *Dep, key Key)
	onTrigger func(dep *Dep, key Key)
}

// Runner is the public handle returned by NewEffect: calling it re-runs
// the effect, and Effect() exposes the underlying Effect for
// introspection and disposal.
type Runner struct {
	effect *Effect
}

// Run re-executes the effect.
func (r *Runner) Run() {
	r.effect.run()
}

// Effect returns the underlying Effect.
func (r *Runner) Effect() *Effect {
	return r.effect
}

// Stop disposes the effect via its runner. Equivalent to Stop(r).
func (r *Runner) Stop() {
	r.effect.stop()
}

// NewEffect creates an Effect wrapping fn and returns its Runner. Unless
// Lazy is set, fn runs once immediately (with tracking enabled) before
// NewEffect returns.
func NewEffect(fn func(), opts EffectOptions) *Runner {
	scope := opts.Scope
	if scope == nil {
		scope = GetCurrentScope()
	}

	e := &Effect{
		fn:           fn,
		scheduler:    opts.Scheduler,
		scope:        scope,
		active:       true,
		computed:     opts.Computed,
		allowRecurse: opts.AllowRecurse,
		onStop:       opts.OnStop,
		onTrack:      opts.OnTrack,
		onTrigger:    opts.OnTrigger,
	}

	if scope != nil {
		recordEffectScope(e, scope)
	}

	runner := &Runner{effect: e}
	if !opts.Lazy {
		runner.Run()
	}
	return runner
}

// Stop disposes the effect owned by runner.
func Stop(runner *Runner) {
	runner.Stop()
}

// IsActive reports whether the effect has not yet been stopped.
func (e *Effect) IsActive() bool {
	return e.active
}

// run re-executes fn, reconciling this effect's Dep subscriptions per
// spec.md §4.2.
func (e *Effect) run() {
	if !e.active {
		e.fn()
		return
	}

	ctx := getTrackingContext()

	for p := ctx.activeEffect; p != nil; p = p.parent {
		if p == e {
			if !e.allowRecurse {
				return
			}
			break
		}
	}

	prevActiveEffect := ctx.activeEffect
	prevShouldTrack := ctx.shouldTrack
	prevTrackOpBit := ctx.trackOpBit
	prevParent := e.parent

	if ctx.activeEffect != e {
		e.parent = ctx.activeEffect
	}
	ctx.activeEffect = e
	ctx.shouldTrack = true

	ctx.depth++
	depth := ctx.depth
	trackOpBit := uint32(1) << uint(depth)
	ctx.trackOpBit = trackOpBit

	if depth <= maxTrackDepth {
		initDepMarkers(e, trackOpBit)
	} else {
		clearAllDeps(e)
	}

	func() {
		defer func() {
			if depth <= maxTrackDepth {
				finalizeDepMarkers(e, trackOpBit)
			}

			e.parent = prevParent
			ctx.activeEffect = prevActiveEffect
			ctx.shouldTrack = prevShouldTrack
			ctx.trackOpBit = prevTrackOpBit
			ctx.depth--

			if e.deferStop {
				e.deferStop = false
				e.stop()
			}
		}()

		e.fn()
	}()
}

// initDepMarkers marks every Dep this effect currently subscribes to as
// "was tracked" at this run's depth, and clears its "newly tracked" bit
// so a later trackEffects call can tell a first-time-this-run
// subscription from a carried-over one.
func initDepMarkers(e *Effect, trackOpBit uint32) {
	for _, dep := range e.deps {
		dep.w |= trackOpBit
		dep.n &^= trackOpBit
	}
}

// finalizeDepMarkers removes e from every Dep that was subscribed before
// this run but was not re-read during it, then clears the bitmask bits
// for this run's depth on everything that remains.
func finalizeDepMarkers(e *Effect, trackOpBit uint32) {
	kept := e.deps[:0]
	for _, dep := range e.deps {
		if dep.wasTracked(trackOpBit) && !dep.newlyTracked(trackOpBit) {
			dep.Delete(e)
			continue
		}
		kept = append(kept, dep)
	}
	e.deps = kept

	for _, dep := range e.deps {
		dep.w &^= trackOpBit
		dep.n &^= trackOpBit
	}
}

// clearAllDeps is the depth > maxTrackDepth fallback: unsubscribe from
// every Dep unconditionally, so the upcoming run rebuilds the
// subscription set from scratch via ordinary (non-bitmask) tracking.
func clearAllDeps(e *Effect) {
	for _, dep := range e.deps {
		dep.Delete(e)
	}
	e.deps = nil
}

// stop disposes the effect: if it is currently running, disposal is
// deferred until run() exits; otherwise every Dep it subscribes to is
// unsubscribed immediately and onStop (if any) fires. Idempotent.
func (e *Effect) stop() {
	if getActiveEffect() == e {
		e.deferStop = true
		return
	}
	if !e.active {
		return
	}

	for _, dep := range e.deps {
		dep.Delete(e)
	}
	e.deps = nil
	e.active = false

	if e.onStop != nil {
		e.onStop()
	}
}
