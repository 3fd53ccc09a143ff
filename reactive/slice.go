package reactive

import (
	"sync"

	"github.com/hollow-works/retrack/core"
)

// lengthKey is the key Slice uses for its length property. Tracking
// array iteration against this same key (rather than core.IterateKey)
// mirrors how a native array's for-of loop implicitly depends on its
// length: any mutation that changes length — Push, Pop, SetLength — is
// modeled as a SET/ADD on "length", so anything that reads or ranges
// over the slice naturally reruns.
const lengthKey = "length"

// Slice is a reactive, index-addressable collection. Reading an element
// subscribes the active effect to that index; Push/Pop/SetLength
// mutate length, which notifies both length-dependent Deps and any
// index Dep truncated out of existence.
type Slice[T any] struct {
	mu   sync.RWMutex
	data []T
}

// NewSlice creates a Slice pre-populated with initial (copied, not
// aliased).
func NewSlice[T any](initial ...T) *Slice[T] {
	return &Slice[T]{data: append([]T(nil), initial...)}
}

// Get returns the element at i, subscribing the active effect to that
// index. Panics on an out-of-range index, like a plain slice index
// expression.
func (s *Slice[T]) Get(i int) T {
	core.Track(s, core.OpGet, i)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[i]
}

// Set stores value at index i, notifying that index's Dep. Panics on an
// out-of-range index.
func (s *Slice[T]) Set(i int, value T) {
	s.mu.Lock()
	s.data[i] = value
	s.mu.Unlock()
	core.Trigger(s, core.OpSet, core.TriggerInfo{Key: i, HasKey: true})
}

// Len returns the current length, subscribing the active effect to the
// length key.
func (s *Slice[T]) Len() int {
	core.Track(s, core.OpGet, lengthKey)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Push appends value, growing the slice by one and notifying the length
// key (an ADD, per array semantics: appending doesn't reorder existing
// elements, so it never needs core.IterateKey).
func (s *Slice[T]) Push(value T) {
	s.mu.Lock()
	s.data = append(s.data, value)
	newLen := len(s.data)
	s.mu.Unlock()
	core.Trigger(s, core.OpAdd, core.TriggerInfo{Key: newLen - 1, HasKey: true, IsArray: true})
}

// Pop removes and returns the last element, reporting false if the
// slice was empty. Modeled as a length SET down to len-1, which
// notifies the truncated index's own Dep along with the length key.
func (s *Slice[T]) Pop() (T, bool) {
	s.mu.Lock()
	if len(s.data) == 0 {
		s.mu.Unlock()
		var zero T
		return zero, false
	}
	last := s.data[len(s.data)-1]
	newLen := len(s.data) - 1
	s.data = s.data[:newLen]
	s.mu.Unlock()

	core.Trigger(s, core.OpSet, core.TriggerInfo{Key: lengthKey, HasKey: true, IsArray: true, NewLength: newLen})
	return last, true
}

// SetLength grows or truncates the slice to exactly n elements,
// zero-filling on growth. Notifies the length key, plus (on truncation)
// every now out-of-bounds index's own Dep.
func (s *Slice[T]) SetLength(n int) {
	s.mu.Lock()
	switch {
	case n < len(s.data):
		s.data = s.data[:n]
	case n > len(s.data):
		grown := make([]T, n)
		copy(grown, s.data)
		s.data = grown
	}
	s.mu.Unlock()

	core.Trigger(s, core.OpSet, core.TriggerInfo{Key: lengthKey, HasKey: true, IsArray: true, NewLength: n})
}

// Range calls fn for every element in order, stopping early if fn
// returns false. Subscribes the active effect to the length key, the
// same dependency any single Get/Len call would create.
func (s *Slice[T]) Range(fn func(int, T) bool) {
	core.Track(s, core.OpGet, lengthKey)
	s.mu.RLock()
	snapshot := append([]T(nil), s.data...)
	s.mu.RUnlock()

	for i, v := range snapshot {
		if !fn(i, v) {
			break
		}
	}
}

// Close forgets every Dep registered for this Slice.
func (s *Slice[T]) Close() {
	core.Forget(s)
}
