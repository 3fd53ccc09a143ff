package core

import "testing"

func TestScopeRunRecordsEffectsForDisposal(t *testing.T) {
	s := newState()
	s.values["x"] = 0

	runs := 0
	scope := NewEffectScope(false)
	scope.Run(func() {
		NewEffect(func() {
			runs++
			s.get("x")
		}, EffectOptions{})
	})

	if runs != 1 {
		t.Fatalf("initial run count = %d", runs)
	}

	s.set("x", 1)
	if runs != 2 {
		t.Fatalf("effect should still react before scope is stopped, runs=%d", runs)
	}

	scope.Stop(false)

	s.set("x", 2)
	if runs != 2 {
		t.Fatalf("effect should not rerun once its scope is stopped, runs=%d", runs)
	}
}

func TestScopeStopCascadesToChildScopes(t *testing.T) {
	s := newState()
	s.values["x"] = 0

	runs := 0
	parent := NewEffectScope(false)
	parent.Run(func() {
		child := NewEffectScope(false)
		child.Run(func() {
			NewEffect(func() {
				runs++
				s.get("x")
			}, EffectOptions{})
		})
	})

	s.set("x", 1)
	if runs != 2 {
		t.Fatalf("child effect should react before parent is stopped, runs=%d", runs)
	}

	parent.Stop(false)

	s.set("x", 2)
	if runs != 2 {
		t.Fatalf("child effect should be stopped along with its parent scope, runs=%d", runs)
	}
}

func TestScopeCleanupRunsOnDispose(t *testing.T) {
	scope := NewEffectScope(false)
	disposed := false
	scope.Run(func() {
		OnScopeDispose(func() {
			disposed = true
		})
	})

	if disposed {
		t.Fatalf("cleanup fired before Stop")
	}
	scope.Stop(false)
	if !disposed {
		t.Fatalf("cleanup did not fire on Stop")
	}
}

func TestScopeStopIsIdempotent(t *testing.T) {
	calls := 0
	scope := NewEffectScope(false)
	scope.Run(func() {
		OnScopeDispose(func() {
			calls++
		})
	})

	scope.Stop(false)
	scope.Stop(false)
	scope.Stop(false)

	if calls != 1 {
		t.Fatalf("cleanup ran %d times, want exactly 1", calls)
	}
	if scope.IsActive() {
		t.Fatalf("scope should report inactive after Stop")
	}
}

func TestDetachedScopeIsNotStoppedByParent(t *testing.T) {
	s := newState()
	s.values["x"] = 0
	runs := 0

	parent := NewEffectScope(false)
	var detached *EffectScope
	parent.Run(func() {
		detached = NewEffectScope(true)
		detached.Run(func() {
			NewEffect(func() {
				runs++
				s.get("x")
			}, EffectOptions{})
		})
	})

	parent.Stop(false)

	s.set("x", 1)
	if runs != 2 {
		t.Fatalf("detached scope's effect should survive parent disposal, runs=%d", runs)
	}

	detached.Stop(false)
	s.set("x", 2)
	if runs != 2 {
		t.Fatalf("detached scope's effect should stop once disposed directly, runs=%d", runs)
	}
}

func TestEffectAgainstStoppedScopeIsNotRecordedForDisposal(t *testing.T) {
	s := newState()
	s.values["x"] = 0
	runs := 0

	scope := NewEffectScope(false)
	scope.Stop(false)

	runner := NewEffect(func() {
		runs++
		s.get("x")
	}, EffectOptions{Scope: scope})
	defer runner.Stop()

	if runs != 1 {
		t.Fatalf("effect should still run once even though its scope is already stopped, runs=%d", runs)
	}

	scope.Stop(false) // idempotent; must not touch the effect since it was never recorded
	s.set("x", 1)
	if runs != 2 {
		t.Fatalf("effect created against an already-stopped scope should still react normally, runs=%d", runs)
	}
}

func TestOnScopeDisposeWithNoActiveScopeIsNoop(t *testing.T) {
	// Must not panic when called outside any Run.
	OnScopeDispose(func() {
		t.Fatalf("cleanup should never run; there is no active scope to own it")
	})
}
