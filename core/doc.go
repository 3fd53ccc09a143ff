// Package core implements the dependency-tracking and invalidation engine
// that powers retrack: a Dep (subscriber set) per tracked object property,
// an Effect that re-runs when any Dep it read changes, a tracking registry
// mapping objects to their properties' Deps, and an EffectScope tree for
// bulk disposal.
//
// # Core Types
//
// Dep is the subscriber set for one (object, key) pair:
//
//	dep := core.NewDep()
//
// Effect wraps a function that re-runs when a Dep it reads changes:
//
//	runner := core.NewEffect(func() {
//	    fmt.Println(obj.Get("count"))
//	}, core.EffectOptions{})
//
// EffectScope groups effects and cleanups for bulk disposal:
//
//	scope := core.NewEffectScope(false)
//	scope.Run(func() {
//	    core.NewEffect(func() { ... }, core.EffectOptions{})
//	})
//	scope.Stop(false)
//
// # Track and Trigger
//
// External proxy layers call Track on property reads and Trigger on
// mutations; Track binds the active effect to the property's Dep, Trigger
// selects the Deps a mutation affects and schedules their effects:
//
//	core.Track(obj, core.OpGet, "count")
//	core.Trigger(obj, core.OpSet, core.TriggerInfo{Key: "count", HasKey: true})
//
// # Concurrency
//
// The engine is single-threaded and non-reentrant in the cooperative
// sense: at most one effect runs at a time per tracking context, and the
// tracking context is sharded per goroutine (see tracking.go) rather than
// held in free process globals. Spawning a goroutine starts a fresh,
// empty tracking context; use WithScope to carry a scope into it
// explicitly when that is desired.
package core
