package reactive

import (
	"sync"

	"github.com/hollow-works/retrack/core"
)

// Map is a reactive map: reads subscribe the active effect to the key
// read (or, for Keys/Range, to core.MapKeyIterateKey/core.IterateKey),
// and writes notify exactly the Deps a Vue-style reactive Map would —
// a Set on an existing key notifies that key plus IterateKey (a value
// change is still visible to a range over the map's entries), while an
// Add or Delete also notifies MapKeyIterateKey since those change the
// key set itself.
type Map[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewMap creates an empty reactive Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{data: make(map[K]V)}
}

// Get returns the value stored at key and whether it was present,
// subscribing the active effect to that key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	core.Track(m, core.OpGet, key)
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Has reports whether key is present, subscribing the active effect via
// core.OpHas.
func (m *Map[K, V]) Has(key K) bool {
	core.Track(m, core.OpHas, key)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// Set stores value at key. If key is new, this is an ADD (notifying the
// key's Dep plus IterateKey and MapKeyIterateKey); if key already
// existed, this is a SET (notifying the key's Dep plus IterateKey,
// since a value change is still visible to a range over the map's
// entries, but not MapKeyIterateKey, since the key set itself didn't
// change).
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	_, existed := m.data[key]
	m.data[key] = value
	m.mu.Unlock()

	if existed {
		core.Trigger(m, core.OpSet, core.TriggerInfo{Key: key, HasKey: true, IsMap: true})
	} else {
		core.Trigger(m, core.OpAdd, core.TriggerInfo{Key: key, HasKey: true, IsMap: true})
	}
}

// Delete removes key if present, notifying the key's Dep plus the
// iteration-tracking Deps. A no-op (and no notification) if key was
// already absent.
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	_, existed := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()

	if existed {
		core.Trigger(m, core.OpDelete, core.TriggerInfo{Key: key, HasKey: true, IsMap: true})
	}
}

// Len returns the number of entries, subscribing the active effect to
// core.IterateKey since any Add/Delete changes this count.
func (m *Map[K, V]) Len() int {
	core.Track(m, core.OpIterate, core.IterateKey)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns a snapshot of the map's keys, subscribing the active
// effect to core.MapKeyIterateKey.
func (m *Map[K, V]) Keys() []K {
	core.Track(m, core.OpIterate, core.MapKeyIterateKey)
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for every entry in an unspecified order, stopping
// early if fn returns false. Subscribes the active effect to
// core.IterateKey.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	core.Track(m, core.OpIterate, core.IterateKey)
	m.mu.RLock()
	snapshot := make(map[K]V, len(m.data))
	for k, v := range m.data {
		snapshot[k] = v
	}
	m.mu.RUnlock()

	for k, v := range snapshot {
		if !fn(k, v) {
			break
		}
	}
}

// Clear empties the map, notifying every Dep ever registered for it.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	m.data = make(map[K]V)
	m.mu.Unlock()
	core.Trigger(m, core.OpClear, core.TriggerInfo{})
}

// Close forgets every Dep registered for this Map.
func (m *Map[K, V]) Close() {
	core.Forget(m)
}
