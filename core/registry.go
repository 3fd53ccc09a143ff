package core

import "sync"

// Key identifies a tracked property within an object's Dep map. Plain
// field/map keys are ordinary Go values; IterateKey and
// MapKeyIterateKey are reserved sentinel keys (see below) used for the
// "iterate the whole collection" and "iterate the keys of a map"
// dependency edges spec.md §4.4 describes.
type Key = any

type iterateKeyType struct{ name string }

func (k *iterateKeyType) String() string { return k.name }

// IterateKey is the Dep slot subscribed to by a range over a reactive
// map's entries (and by its Len), and fired by ADD and DELETE on a
// non-array collection, by SET on a map, and by CLEAR. Slices track
// iteration through their "length" key instead.
var IterateKey Key = &iterateKeyType{"iterate"}

// MapKeyIterateKey is the Dep slot subscribed to by a for-range over a
// reactive map's keys, and fired only by operations that add or remove
// keys (ADD, DELETE, CLEAR) — not by a SET that merely changes an
// existing key's value.
var MapKeyIterateKey Key = &iterateKeyType{"mapKeyIterate"}

// registry maps a tracked target to the Dep for each of its tracked
// keys. Deliberately a strong reference: see DESIGN.md and SPEC_FULL.md
// §6 for why a weak-keyed alternative isn't viable in Go for a
// track/trigger signature fixed at target any. Callers that want to
// reclaim a target's Deps must call Forget explicitly at teardown.
var (
	registryMu sync.Mutex
	registry   = make(map[any]map[Key]*Dep)
)

// getDep returns the Dep for (target, key), creating both the target's
// inner map and the Dep itself if create is true and they don't exist
// yet. Returns nil, false if create is false and no Dep exists.
func getDep(target any, key Key, create bool) (*Dep, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	keyDeps, ok := registry[target]
	if !ok {
		if !create {
			return nil, false
		}
		keyDeps = make(map[Key]*Dep)
		registry[target] = keyDeps
	}

	dep, ok := keyDeps[key]
	if !ok {
		if !create {
			return nil, false
		}
		dep = NewDep()
		keyDeps[key] = dep
	}
	return dep, true
}

// GetDepFromReactive returns the Dep currently tracking (target, key),
// or nil if nothing has tracked that pair yet. Never creates one; use
// Track for that.
func GetDepFromReactive(target any, key Key) *Dep {
	dep, _ := getDep(target, key, false)
	return dep
}

// Forget drops every Dep registered for target. Intended to be called
// by a reactive wrapper's teardown/dispose method once target is no
// longer reachable through the reactive layer, so its Deps don't
// outlive it for the rest of the process.
func Forget(target any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, target)
}

// Snapshot describes one tracked key's current subscriber count, for
// diagnostic introspection. Never consulted by the tracking protocol
// itself — only by tooling like cmd/retrackctl's inspect command.
type Snapshot struct {
	Key         Key
	Subscribers int
}

// Inspect returns a snapshot of every key target currently has a Dep
// registered for, in no particular order.
func Inspect(target any) []Snapshot {
	var out []Snapshot
	forEachKeyDep(target, func(key Key, dep *Dep) {
		out = append(out, Snapshot{Key: key, Subscribers: dep.Len()})
	})
	return out
}

// forEachKeyDep calls fn for every (key, Dep) pair currently registered
// for target. Used by Trigger's CLEAR handling (every key's Dep), by its
// array-length truncation handling (every index Dep past the new
// length), and by Inspect.
func forEachKeyDep(target any, fn func(key Key, dep *Dep)) {
	registryMu.Lock()
	keyDeps, ok := registry[target]
	if !ok {
		registryMu.Unlock()
		return
	}
	snapshot := make(map[Key]*Dep, len(keyDeps))
	for k, d := range keyDeps {
		snapshot[k] = d
	}
	registryMu.Unlock()

	for k, d := range snapshot {
		fn(k, d)
	}
}
