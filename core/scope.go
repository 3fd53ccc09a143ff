package core

// EffectScope groups effects and cleanup callbacks so they can be
// disposed together, and nests under a parent scope unless created
// detached. Disposing a scope disposes every effect and child scope it
// owns, recursively, and is idempotent.
type EffectScope struct {
	active   bool
	detached bool

	effects  []*Effect
	cleanups []func()

	parent *EffectScope
	scopes []*EffectScope

	// index is this scope's position in its parent's scopes slice, kept
	// in sync so Stop can detach in O(1) instead of a linear search.
	index int
}

// NewEffectScope creates a new scope. Unless detached is true, it is
// recorded as a child of the currently active scope (if any), so
// disposing the parent disposes this one too.
func NewEffectScope(detached bool) *EffectScope {
	s := &EffectScope{active: true, detached: detached}
	if !detached {
		if parent := GetCurrentScope(); parent != nil {
			parent.scopes = append(parent.scopes, s)
			s.parent = parent
			s.index = len(parent.scopes) - 1
		}
	}
	return s
}

// Run executes fn with this scope set as the active scope on the
// calling goroutine, so any effect or child scope created inside fn is
// recorded under this scope. Returns false without running fn if the
// scope has already been stopped.
func (s *EffectScope) Run(fn func()) bool {
	if !s.active {
		warnMisuse("E001")
		return false
	}
	old := setActiveScope(s)
	defer setActiveScope(old)
	fn()
	return true
}

// On sets this scope as the active scope on the calling goroutine
// without running anything, returning the previously active scope so
// the caller can restore it via Off. Pairs with Off; prefer Run when a
// single synchronous block suffices.
func (s *EffectScope) On() *EffectScope {
	return setActiveScope(s)
}

// Off restores prev (the scope returned by a prior On call) as the
// active scope on the calling goroutine.
func (s *EffectScope) Off(prev *EffectScope) {
	setActiveScope(prev)
}

// OnScopeDispose registers fn to run when the currently active scope on
// the calling goroutine is stopped. If there is no active scope, fn is
// dropped, with an E002 warning logged when DevMode is on.
func OnScopeDispose(fn func()) {
	s := GetCurrentScope()
	if s == nil {
		warnMisuse("E002")
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// IsActive reports whether the scope has not yet been stopped.
func (s *EffectScope) IsActive() bool {
	return s.active
}

// Stop disposes the scope: every effect it owns is stopped, every
// cleanup registered via OnScopeDispose runs, and every child scope is
// stopped recursively. fromParent should be true only when Stop is
// being called by a parent scope's own Stop, so this scope can skip the
// now-pointless O(1) self-detach from a parent slice that is itself
// being discarded. Idempotent: a second call is a no-op.
func (s *EffectScope) Stop(fromParent bool) {
	if !s.active {
		return
	}

	for _, e := range s.effects {
		e.stop()
	}
	s.effects = nil

	for _, cleanup := range s.cleanups {
		cleanup()
	}
	s.cleanups = nil

	for _, child := range s.scopes {
		child.Stop(true)
	}
	s.scopes = nil

	if !s.detached && !fromParent && s.parent != nil {
		last := len(s.parent.scopes) - 1
		if last >= 0 && s.index <= last {
			s.parent.scopes[s.index] = s.parent.scopes[last]
			s.parent.scopes[s.index].index = s.index
			s.parent.scopes = s.parent.scopes[:last]
		}
	}
	s.parent = nil

	s.active = false
}

// recordEffectScope attaches e to scope's effect list, so scope.Stop
// will stop e, but only if scope is still active — spec.md §4.5:
// "appends the effect to the scope's effect list iff the scope is
// active." An effect created against an already-stopped scope is never
// recorded, so it isn't silently kept alive past that scope's cascade.
// Called by NewEffect when a scope is active.
func recordEffectScope(e *Effect, scope *EffectScope) {
	if !scope.active {
		return
	}
	scope.effects = append(scope.effects, e)
}
