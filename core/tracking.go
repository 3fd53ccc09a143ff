package core

import (
	"runtime"
	"sync"
)

// trackingContext holds the process-wide execution state spec.md assumes
// (activeEffect, activeEffectScope, shouldTrack, effectTrackDepth,
// trackOpBit), but sharded per goroutine rather than held as free
// globals, per spec.md §9's guidance for a systems-language port.
//
// Each goroutine gets its own, independent context: spawning a goroutine
// does not inherit the parent's active effect or scope. Call WithScope
// explicitly if a spawned goroutine needs to participate in an existing
// scope; there is no helper that carries an active effect across.
type trackingContext struct {
	activeEffect *Effect
	activeScope  *EffectScope

	shouldTrack bool
	trackStack  []bool

	depth      int
	trackOpBit uint32
}

var trackingContexts sync.Map // goroutine id (uint64) -> *trackingContext

// getGoroutineID extracts the numeric goroutine id from the runtime stack
// trace. This is an implementation detail of the per-goroutine sharding
// scheme below and is never exposed outside this file.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip the "goroutine " prefix
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{shouldTrack: true}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// cleanupGoroutineContext drops the tracking context for the calling
// goroutine. Contexts are never removed automatically: a goroutine that
// exits without calling this leaves its small context in the map. It
// exists for long-lived worker pools that want to bound memory
// explicitly.
func cleanupGoroutineContext() {
	trackingContexts.Delete(getGoroutineID())
}

// CleanupGoroutineContext drops the calling goroutine's tracking context.
// Safe to call from a goroutine that is about to exit.
func CleanupGoroutineContext() {
	cleanupGoroutineContext()
}

func getActiveEffect() *Effect {
	return getTrackingContext().activeEffect
}

func setActiveEffect(e *Effect) *Effect {
	ctx := getTrackingContext()
	old := ctx.activeEffect
	ctx.activeEffect = e
	return old
}

// GetCurrentScope returns the currently active EffectScope for the
// calling goroutine, or nil if none is active.
func GetCurrentScope() *EffectScope {
	return getTrackingContext().activeScope
}

func setActiveScope(s *EffectScope) *EffectScope {
	ctx := getTrackingContext()
	old := ctx.activeScope
	ctx.activeScope = s
	return old
}

// WithScope runs fn with scope set as the active EffectScope on the
// calling goroutine, restoring the previous scope afterward. This is how
// a goroutine spawned from within a scope's Run opts back into that
// scope's ownership.
func WithScope(scope *EffectScope, fn func()) {
	old := setActiveScope(scope)
	defer setActiveScope(old)
	fn()
}

// PauseTracking suspends dependency tracking on the calling goroutine,
// saving the previous state on a stack so nested pause/enable/reset calls
// compose. Use this to read tracked objects inside a callback without
// subscribing the active effect.
func PauseTracking() {
	ctx := getTrackingContext()
	ctx.trackStack = append(ctx.trackStack, ctx.shouldTrack)
	ctx.shouldTrack = false
}

// EnableTracking resumes dependency tracking on the calling goroutine,
// saving the previous state on the same stack PauseTracking uses.
func EnableTracking() {
	ctx := getTrackingContext()
	ctx.trackStack = append(ctx.trackStack, ctx.shouldTrack)
	ctx.shouldTrack = true
}

// ResetTracking restores the tracking state to what it was before the
// most recent PauseTracking or EnableTracking call.
func ResetTracking() {
	ctx := getTrackingContext()
	n := len(ctx.trackStack)
	if n == 0 {
		ctx.shouldTrack = true
		return
	}
	ctx.shouldTrack = ctx.trackStack[n-1]
	ctx.trackStack = ctx.trackStack[:n-1]
}
