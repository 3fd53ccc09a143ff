// Package watch layers Vue-style watchEffect/watch sugar over core's
// low-level Effect: WatchEffect for automatic dependency discovery, and
// Watch for watching an explicit source and diffing old/new values.
package watch

import (
	"github.com/hollow-works/retrack/core"
	"github.com/hollow-works/retrack/ref"
)

// FlushMode controls when a watcher's callback runs relative to the
// dependency change that triggered it.
type FlushMode int

const (
	// FlushSync runs the callback synchronously, inline with whatever
	// mutation triggered it. The default.
	FlushSync FlushMode = iota
	// FlushPost defers the callback onto the package-level post queue;
	// the host drains it by calling Flush.
	FlushPost
)

// Options configures a Watch or WatchEffect call.
type Options struct {
	// Immediate, if true, runs the callback once up front with the
	// source's current value as both newVal and oldVal (only meaningful
	// for Watch; WatchEffect's effect function always runs immediately
	// regardless).
	Immediate bool

	// Flush selects when the callback runs relative to a dependency
	// change. Defaults to FlushSync.
	Flush FlushMode

	// Scope pins the underlying effect to a specific EffectScope
	// instead of the one active on the creating goroutine.
	Scope *core.EffectScope
}

// Option mutates Options; ImmediateOpt and FlushOpt build the common
// ones.
type Option func(*Options)

// ImmediateOpt makes Watch invoke its callback once immediately with
// the source's current value.
func ImmediateOpt() Option {
	return func(o *Options) { o.Immediate = true }
}

// FlushOpt sets the flush mode.
func FlushOpt(mode FlushMode) Option {
	return func(o *Options) { o.Flush = mode }
}

// ScopeOpt pins the watcher to a specific scope.
func ScopeOpt(scope *core.EffectScope) Option {
	return func(o *Options) { o.Scope = scope }
}

func resolve(opts []Option) Options {
	var o Options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// watcher is the shared state behind both WatchEffect and Watch: a
// core.Runner plus whatever FlushPost queueing it needs.
type watcher struct {
	runner *core.Runner
}

func (w *watcher) flush() {
	w.runner.Run()
}

// StopFunc disposes a watcher created by WatchEffect or Watch.
type StopFunc func()

// WatchEffect runs fn immediately, tracking whatever reactive values it
// reads. Whenever any of them changes, fn re-runs, with dependencies
// re-discovered fresh on every run (so a fn with conditional reads
// naturally drops stale dependencies the way any core.Effect does).
func WatchEffect(fn func(), opts ...Option) StopFunc {
	o := resolve(opts)
	w := &watcher{}

	effectOpts := core.EffectOptions{Scope: o.Scope}
	if o.Flush == FlushPost {
		effectOpts.Scheduler = func() { global.enqueue(w) }
	}

	w.runner = core.NewEffect(fn, effectOpts)

	return func() {
		global.remove(w)
		w.runner.Stop()
	}
}

// Watch tracks source inside a throwaway effect run, and invokes cb
// with the new and previous value only when source's result actually
// changes, per ref.Equal's rules (== for ordinary comparables,
// reflect.DeepEqual otherwise).
func Watch[T any](source func() T, cb func(newVal, oldVal T), opts ...Option) StopFunc {
	o := resolve(opts)
	w := &watcher{}

	var oldVal T
	first := true

	run := func() {
		newVal := source()
		if first {
			first = false
			oldVal = newVal
			if o.Immediate {
				cb(newVal, newVal)
			}
			return
		}
		if ref.Equal(oldVal, newVal) {
			return
		}
		prev := oldVal
		oldVal = newVal
		cb(newVal, prev)
	}

	effectOpts := core.EffectOptions{Scope: o.Scope}
	if o.Flush == FlushPost {
		effectOpts.Scheduler = func() { global.enqueue(w) }
	}

	w.runner = core.NewEffect(run, effectOpts)

	return func() {
		global.remove(w)
		w.runner.Stop()
	}
}
