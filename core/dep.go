package core

// maxTrackDepth is the deepest nested effect run the bitmask fast path
// supports. Bit k of a Dep's w/n fields corresponds to recursion depth k,
// so depth 30 uses bit 30 (trackOpBit = 1 << 30), which still fits in
// the uint32 w/n fields. Runs
// nested deeper than this fall back to full clear-and-rebuild tracking
// (see Effect.run in effect.go).
const maxTrackDepth = 30

// Dep is the subscriber set for one tracked (object, key) pair: the set
// of effects that read it, plus the two bitmask fields the reconciliation
// protocol in Effect.run uses to avoid a full unsubscribe/resubscribe on
// every re-run when the dependency set hasn't actually changed.
//
// w ("was tracked") and n ("newly tracked") are bitmasks; bit k is set
// iff this Dep was subscribed to the effect currently running at
// recursion depth k, before (w) or during (n) the current run. At rest,
// with no effect executing at depth >= k, bit k of every Dep is 0.
type Dep struct {
	order []*Effect
	set   map[*Effect]struct{}
	w, n  uint32
}

// NewDep creates an empty Dep, or one pre-populated from the given
// effects if any are supplied.
func NewDep(effects ...*Effect) *Dep {
	d := &Dep{set: make(map[*Effect]struct{}, len(effects))}
	for _, e := range effects {
		d.Add(e)
	}
	return d
}

// Add subscribes e to this Dep if it isn't already subscribed.
func (d *Dep) Add(e *Effect) {
	if _, ok := d.set[e]; ok {
		return
	}
	d.set[e] = struct{}{}
	d.order = append(d.order, e)
}

// Delete unsubscribes e from this Dep.
func (d *Dep) Delete(e *Effect) {
	if _, ok := d.set[e]; !ok {
		return
	}
	delete(d.set, e)
	for i, existing := range d.order {
		if existing == e {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Has reports whether e is currently subscribed.
func (d *Dep) Has(e *Effect) bool {
	_, ok := d.set[e]
	return ok
}

// Len returns the number of subscribed effects.
func (d *Dep) Len() int {
	return len(d.order)
}

// Effects returns a snapshot of the subscribed effects in subscription
// order. The snapshot is a fresh copy so callers can iterate it safely
// even if the Dep's membership changes concurrently (e.g. an effect
// unsubscribing itself mid-notification).
func (d *Dep) Effects() []*Effect {
	out := make([]*Effect, len(d.order))
	copy(out, d.order)
	return out
}

// wasTracked reports whether this Dep was subscribed to the effect
// running at the recursion depth identified by trackOpBit, before the
// current run began.
func (d *Dep) wasTracked(trackOpBit uint32) bool {
	return d.w&trackOpBit != 0
}

// newlyTracked reports whether this Dep has been (re-)subscribed during
// the current run, at the recursion depth identified by trackOpBit.
func (d *Dep) newlyTracked(trackOpBit uint32) bool {
	return d.n&trackOpBit != 0
}
