package watch

import "sync"

// postQueue is the microtask-style queue FlushPost watchers enqueue
// into instead of running synchronously. spec.md's engine deliberately
// has no scheduler of its own (§9: "implementers providing a
// watch-style API should build their own microtask queue on top"); this
// is that queue, kept deliberately simple — a dedup'd FIFO a host drains
// by calling Flush, rather than a full priority scheduler.
type postQueue struct {
	mu      sync.Mutex
	queued  map[*watcher]struct{}
	pending []*watcher
}

var global = &postQueue{queued: make(map[*watcher]struct{})}

func (q *postQueue) enqueue(w *watcher) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queued[w]; ok {
		return
	}
	q.queued[w] = struct{}{}
	q.pending = append(q.pending, w)
}

func (q *postQueue) remove(w *watcher) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queued[w]; !ok {
		return
	}
	delete(q.queued, w)
	for i, existing := range q.pending {
		if existing == w {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
}

// drain runs every currently queued watcher exactly once, in enqueue
// order. Watchers queued by a run triggered during this drain are left
// for the next Flush call rather than run recursively.
func (q *postQueue) drain() {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.queued = make(map[*watcher]struct{})
	q.mu.Unlock()

	for _, w := range batch {
		w.flush()
	}
}

// Flush synchronously runs every watcher currently queued with
// Flush(FlushPost), in the order they were scheduled. A no-op if
// nothing is queued. Hosts using FlushPost watchers should call this at
// a point analogous to a UI event loop's "end of tick" — spec.md
// explicitly leaves that cadence up to the implementer.
func Flush() {
	global.drain()
}

// PendingCount reports how many FlushPost watchers are currently queued
// and waiting for the next Flush call. Mainly useful for tests and
// diagnostics.
func PendingCount() int {
	global.mu.Lock()
	defer global.mu.Unlock()
	return len(global.pending)
}
