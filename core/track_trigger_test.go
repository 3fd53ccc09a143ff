package core

import "testing"

func TestTrackEffectsLowLevelBypassesRegistry(t *testing.T) {
	dep := NewDep()
	runs := 0
	var val int

	NewEffect(func() {
		runs++
		TrackEffects(dep)
		_ = val
	}, EffectOptions{})

	if runs != 1 {
		t.Fatalf("initial run = %d", runs)
	}

	val = 1
	TriggerEffects(dep)
	if runs != 2 {
		t.Fatalf("runs after TriggerEffects = %d, want 2", runs)
	}
}

func TestTriggerClearNotifiesEveryKey(t *testing.T) {
	target := &struct{}{}
	depA, _ := getDep(target, "a", true)
	depB, _ := getDep(target, "b", true)

	firedA, firedB := false, false
	NewEffect(func() { TrackEffects(depA) }, EffectOptions{OnTrigger: func(_ *Dep, _ Key) { firedA = true }})
	NewEffect(func() { TrackEffects(depB) }, EffectOptions{OnTrigger: func(_ *Dep, _ Key) { firedB = true }})

	Trigger(target, OpClear, TriggerInfo{})

	if !firedA || !firedB {
		t.Fatalf("Clear should notify every key's Dep: firedA=%v firedB=%v", firedA, firedB)
	}
}

func TestTriggerMapAddNotifiesKeyIterateAndMapKeyIterate(t *testing.T) {
	target := &struct{}{}

	iterFired, mapIterFired := false, false
	NewEffect(func() { Track(target, OpIterate, IterateKey) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { iterFired = true },
	})
	NewEffect(func() { Track(target, OpIterate, MapKeyIterateKey) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { mapIterFired = true },
	})

	Trigger(target, OpAdd, TriggerInfo{Key: "newKey", HasKey: true, IsMap: true})

	if !iterFired {
		t.Fatalf("map Add should notify IterateKey's Dep")
	}
	if !mapIterFired {
		t.Fatalf("map Add should notify MapKeyIterateKey's Dep")
	}
}

func TestTriggerMapSetOnExistingKeyNotifiesIterateKeyButNotMapKeyIterateKey(t *testing.T) {
	target := &struct{}{}

	iterFired, mapIterFired := false, false
	NewEffect(func() { Track(target, OpIterate, IterateKey) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { iterFired = true },
	})
	NewEffect(func() { Track(target, OpIterate, MapKeyIterateKey) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { mapIterFired = true },
	})

	Trigger(target, OpSet, TriggerInfo{Key: "existingKey", HasKey: true, IsMap: true})

	if !iterFired {
		t.Fatalf("map Set on an existing key should still notify IterateKey's Dep (a range over the map sees the new value)")
	}
	if mapIterFired {
		t.Fatalf("map Set on an existing key must not notify MapKeyIterateKey's Dep (the key set itself is unchanged)")
	}
}

func TestTriggerObjectSetDoesNotNotifyIterateKey(t *testing.T) {
	target := &struct{}{}

	iterFired := false
	NewEffect(func() { Track(target, OpIterate, IterateKey) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { iterFired = true },
	})

	Trigger(target, OpSet, TriggerInfo{Key: "a", HasKey: true})

	if iterFired {
		t.Fatalf("a plain (non-map) Set must not notify IterateKey's Dep")
	}
}

func TestTriggerArraySetLengthNotifiesTruncatedIndices(t *testing.T) {
	target := &struct{}{}

	reran := false
	NewEffect(func() { Track(target, OpGet, 5) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { reran = true },
	})

	Trigger(target, OpSet, TriggerInfo{Key: "length", HasKey: false, IsArray: true, NewLength: 3})

	if !reran {
		t.Fatalf("index 5's Dep should fire when array truncates to length 3")
	}
}

func TestTriggerArraySetWithinLengthDoesNotNotifyOtherIndices(t *testing.T) {
	target := &struct{}{}

	fired := false
	NewEffect(func() { Track(target, OpGet, 1) }, EffectOptions{
		OnTrigger: func(_ *Dep, _ Key) { fired = true },
	})

	Trigger(target, OpSet, TriggerInfo{Key: 0, HasKey: true})

	if fired {
		t.Fatalf("setting index 0 must not notify index 1's Dep")
	}
}

func TestForgetDropsAllDepsForTarget(t *testing.T) {
	target := &struct{}{}
	getDep(target, "a", true)
	getDep(target, "b", true)

	if GetDepFromReactive(target, "a") == nil {
		t.Fatalf("setup: expected Dep for key a to exist")
	}

	Forget(target)

	if GetDepFromReactive(target, "a") != nil || GetDepFromReactive(target, "b") != nil {
		t.Fatalf("Forget should drop every Dep registered for target")
	}
}

func TestInspectReportsSubscriberCounts(t *testing.T) {
	target := &struct{}{}

	NewEffect(func() { Track(target, OpGet, "a") }, EffectOptions{})
	NewEffect(func() { Track(target, OpGet, "a") }, EffectOptions{})
	NewEffect(func() { Track(target, OpGet, "b") }, EffectOptions{})

	snapshots := Inspect(target)
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 tracked keys, got %d", len(snapshots))
	}

	counts := make(map[Key]int, len(snapshots))
	for _, s := range snapshots {
		counts[s.Key] = s.Subscribers
	}
	if counts["a"] != 2 {
		t.Fatalf("key a subscribers = %d, want 2", counts["a"])
	}
	if counts["b"] != 1 {
		t.Fatalf("key b subscribers = %d, want 1", counts["b"])
	}
}

func TestTriggerEffectSkipsActiveEffectWithoutAllowRecurse(t *testing.T) {
	dep := NewDep()
	runs := 0
	NewEffect(func() {
		runs++
		TrackEffects(dep)
		if runs == 1 {
			TriggerEffects(dep) // self-trigger while running; should be dropped
		}
	}, EffectOptions{})

	if runs != 1 {
		t.Fatalf("self-trigger without AllowRecurse should be dropped, runs=%d", runs)
	}
}

func TestComputedEffectsRunBeforePlainEffects(t *testing.T) {
	dep := NewDep()
	var order []string

	NewEffect(func() {
		TrackEffects(dep)
		order = append(order, "plain")
	}, EffectOptions{})

	NewEffect(func() {
		TrackEffects(dep)
		order = append(order, "computed")
	}, EffectOptions{Computed: true})

	order = nil
	TriggerEffects(dep)

	if len(order) != 2 || order[0] != "computed" || order[1] != "plain" {
		t.Fatalf("computed-first ordering violated: %v", order)
	}
}

func TestPauseResetTrackingSuppressesSubscription(t *testing.T) {
	s := newState()
	s.values["x"] = 0

	runs := 0
	NewEffect(func() {
		runs++
		PauseTracking()
		s.get("x")
		ResetTracking()
	}, EffectOptions{})

	if runs != 1 {
		t.Fatalf("initial run = %d", runs)
	}

	s.set("x", 1)
	if runs != 1 {
		t.Fatalf("read while tracking paused should not subscribe the effect, runs=%d", runs)
	}
}
