// Package ref provides Ref and Computed: value containers that own a
// single dependency-tracking slot directly, bypassing the (target, key)
// registry core uses for reactive objects. This mirrors how a dedicated
// value box is typically layered on top of a property-tracking engine:
// it owns its Dep instead of looking one up.
package ref

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/hollow-works/retrack/core"
)

// Ref is a boxed value with its own private Dep. Reading Get during a
// tracked effect subscribes that effect; Set notifies subscribers when
// the stored value actually changes.
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
	dep   *core.Dep
	equal func(a, b T) bool
}

// New creates a Ref holding initial.
func New[T any](initial T) *Ref[T] {
	return &Ref[T]{value: initial, dep: core.NewDep()}
}

// WithEquals configures a custom equality check used by Set to decide
// whether the value actually changed. The zero value uses Equal[T].
func (r *Ref[T]) WithEquals(fn func(a, b T) bool) *Ref[T] {
	r.equal = fn
	return r
}

// Get returns the current value, subscribing the active effect (if any)
// on the calling goroutine.
func (r *Ref[T]) Get() T {
	r.mu.RLock()
	v := r.value
	r.mu.RUnlock()

	core.TrackEffects(r.dep)
	return v
}

// Peek returns the current value without subscribing the active effect.
func (r *Ref[T]) Peek() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set stores value and notifies subscribers if it differs from the
// current value under the Ref's equality check.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	changed := !r.equals(r.value, value)
	if changed {
		r.value = value
	}
	r.mu.Unlock()

	if changed {
		core.TriggerEffects(r.dep)
	}
}

// Update atomically reads, transforms, and stores the value in one
// step, notifying subscribers if the transformed value differs.
func (r *Ref[T]) Update(fn func(T) T) {
	r.mu.Lock()
	old := r.value
	next := fn(old)
	changed := !r.equals(old, next)
	if changed {
		r.value = next
	}
	r.mu.Unlock()

	if changed {
		core.TriggerEffects(r.dep)
	}
}

func (r *Ref[T]) equals(a, b T) bool {
	if r.equal != nil {
		return r.equal(a, b)
	}
	return Equal(a, b)
}

// Equal provides type-appropriate equality for Ref/Computed's default
// change check: a direct == comparison for ordinary comparable
// primitives, and reflect.DeepEqual for everything else (slices, maps,
// structs containing either).
func Equal[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// Computed is a lazily evaluated, cached derivation. It stays dirty
// until the next Get, at which point it recomputes exactly once no
// matter how many of its dependencies changed in between; its backing
// effect is marked Computed so core.TriggerEffects runs it before the
// plain effects that read it.
type Computed[T any] struct {
	compute func() T
	runner  *core.Runner
	dep     *core.Dep

	valueMu sync.RWMutex
	value   T

	dirty atomic.Bool
}

// NewComputed creates a Computed backed by compute. compute runs inside
// a lazy effect the first time Get is called, and again on the next Get
// after any dependency it read has changed.
func NewComputed[T any](compute func() T) *Computed[T] {
	c := &Computed[T]{compute: compute, dep: core.NewDep()}
	c.dirty.Store(true)

	c.runner = core.NewEffect(func() {
		next := c.compute()
		c.valueMu.Lock()
		c.value = next
		c.valueMu.Unlock()
	}, core.EffectOptions{
		Lazy:      true,
		Computed:  true,
		Scheduler: c.onDependencyChanged,
	})

	return c
}

// onDependencyChanged is the Computed's effect scheduler: instead of
// recomputing eagerly, it just flips the dirty flag and notifies this
// Computed's own subscribers, mirroring a cached-derivation's
// CAS-guarded invalidation (recompute happens lazily, on the next Get).
func (c *Computed[T]) onDependencyChanged() {
	if c.dirty.CompareAndSwap(false, true) {
		core.TriggerEffects(c.dep)
	}
}

// Get returns the computed value, recomputing first if a dependency has
// changed since the last Get, and subscribes the active effect (if any)
// on the calling goroutine to this Computed's own Dep.
func (c *Computed[T]) Get() T {
	core.TrackEffects(c.dep)

	if c.dirty.CompareAndSwap(true, false) {
		c.runner.Run()
	}

	c.valueMu.RLock()
	defer c.valueMu.RUnlock()
	return c.value
}

// Peek returns the computed value without subscribing the active
// effect, still recomputing first if dirty.
func (c *Computed[T]) Peek() T {
	if c.dirty.CompareAndSwap(true, false) {
		c.runner.Run()
	}
	c.valueMu.RLock()
	defer c.valueMu.RUnlock()
	return c.value
}

// Stop disposes the Computed's backing effect. A disposed Computed never
// recomputes again; Get keeps returning its last cached value.
func (c *Computed[T]) Stop() {
	c.runner.Stop()
	c.dirty.Store(false)
}
