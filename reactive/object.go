// Package reactive is the Go-idiomatic stand-in for a Proxy-based
// reactive() wrapper: Go has no runtime interception of plain field,
// map, or slice access, so instead of transparently wrapping an
// arbitrary value this package provides explicit wrapper types —
// Object, Map, and Slice — whose accessor methods call core.Track and
// core.Trigger themselves.
package reactive

import "github.com/hollow-works/retrack/core"

// Object wraps a pointer to a plain struct so its fields can be made
// individually trackable via Field, without requiring the struct itself
// to know anything about reactivity.
type Object[T any] struct {
	target *T
}

// NewObject wraps target. target's identity (the pointer itself) is
// what keys the tracking registry, so two Objects wrapping the same
// pointer share one set of Deps.
func NewObject[T any](target *T) *Object[T] {
	return &Object[T]{target: target}
}

// Raw returns the wrapped pointer, for code that needs to pass it to a
// non-reactive API. Reading through Raw does not track.
func (o *Object[T]) Raw() *T {
	return o.target
}

// Close forgets every Dep registered for this Object's target, per
// core.Forget's contract: call this once the Object (and every Field
// built on it) is no longer reachable through the reactive layer, or
// its Deps leak for the process lifetime.
func (o *Object[T]) Close() {
	core.Forget(o.target)
}

// Field is a trackable accessor bound to one property of an Object. Go
// has no way to intercept a plain struct field read, so the getter and
// setter are supplied explicitly; Field's job is purely to wire their
// calls through Track/Trigger.
type Field[T any, V any] struct {
	obj *Object[T]
	key core.Key
	get func(*T) V
	set func(*T, V)
}

// NewField builds a Field for obj's property named key (key only needs
// to be unique within obj and is never interpreted structurally — it is
// whatever a diagnostics listener will display as the property name).
func NewField[T any, V any](obj *Object[T], key string, get func(*T) V, set func(*T, V)) *Field[T, V] {
	return &Field[T, V]{obj: obj, key: key, get: get, set: set}
}

// Get reads the field, subscribing the active effect (if any) on the
// calling goroutine to this (object, key) pair.
func (f *Field[T, V]) Get() V {
	core.Track(f.obj.target, core.OpGet, f.key)
	return f.get(f.obj.target)
}

// Set writes the field and notifies subscribers unconditionally — Field
// has no equality check of its own, since the getter/setter pair may
// not round-trip a comparable value. Wrap Set in a ref.Equal-style guard
// at the call site if that matters.
func (f *Field[T, V]) Set(value V) {
	f.set(f.obj.target, value)
	core.Trigger(f.obj.target, core.OpSet, core.TriggerInfo{Key: f.key, HasKey: true})
}
