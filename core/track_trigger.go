package core

// TrackOpType identifies the kind of read that caused a Track call. It
// has no effect on which Dep gets subscribed — that's decided entirely
// by the key passed to Track. Track accepts it but does not use it, and
// it is not passed on to an onTrack callback.
type TrackOpType int

const (
	OpGet TrackOpType = iota
	OpHas
	OpIterate
)

func (t TrackOpType) String() string {
	switch t {
	case OpGet:
		return "get"
	case OpHas:
		return "has"
	case OpIterate:
		return "iterate"
	default:
		return "unknown"
	}
}

// TriggerOpType identifies the kind of mutation that caused a Trigger
// call, and does drive which Deps get notified — see Trigger.
type TriggerOpType int

const (
	OpSet TriggerOpType = iota
	OpAdd
	OpDelete
	OpClear
)

func (t TriggerOpType) String() string {
	switch t {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// TriggerInfo carries the detail Trigger needs to select which Deps a
// mutation invalidates, mirroring the collection-aware fan-out rules of
// a reactive object/map/slice proxy layer.
type TriggerInfo struct {
	// Key is the property/element/map key that was mutated. Only
	// meaningful when HasKey is true (a Clear, for instance, has none).
	Key Key
	HasKey bool

	// IsArray marks target as a slice-backed collection, routing length
	// changes and index adds through the array-specific rules below
	// instead of the generic object/map rules.
	IsArray bool

	// IsMap marks target as a map-backed collection, so Add/Delete also
	// notify MapKeyIterateKey in addition to IterateKey.
	IsMap bool

	// NewLength is populated for an array length SET, so Trigger can
	// notify every now out-of-bounds index's Dep (truncation).
	NewLength int
}

// Track records that the currently active effect (if any) on the
// calling goroutine reads target's key, subscribing it to that pair's
// Dep in the registry. A no-op if tracking is disabled or no effect is
// active.
func Track(target any, opType TrackOpType, key Key) {
	ctx := getTrackingContext()
	if !ctx.shouldTrack || ctx.activeEffect == nil {
		return
	}

	dep, _ := getDep(target, key, true)
	e := ctx.activeEffect
	if trackEffectsInternal(dep) && e.onTrack != nil {
		e.onTrack(dep, key)
	}
	_ = opType
}

// TrackEffects subscribes the currently active effect on the calling
// goroutine to dep directly, bypassing the (target, key) registry. This
// is the low-level form ref/computed implementations use when they own
// a Dep directly instead of going through Track.
func TrackEffects(dep *Dep) {
	trackEffectsInternal(dep)
}

// trackEffectsInternal implements the bitmask-aware subscribe decision
// from dep.go: within the fast-path depth range it uses the w/n
// bitmasks to decide in O(1) whether this Dep is already subscribed to
// the running effect at this depth; beyond that range it falls back to
// a Has lookup. Returns false if there was no active effect to
// subscribe.
func trackEffectsInternal(dep *Dep) bool {
	ctx := getTrackingContext()
	if !ctx.shouldTrack || ctx.activeEffect == nil {
		return false
	}
	e := ctx.activeEffect

	shouldTrack := false
	if ctx.depth >= 1 && ctx.depth <= maxTrackDepth {
		if !dep.newlyTracked(ctx.trackOpBit) {
			dep.n |= ctx.trackOpBit
			shouldTrack = !dep.wasTracked(ctx.trackOpBit)
		}
	} else {
		shouldTrack = !dep.Has(e)
	}

	if shouldTrack {
		dep.Add(e)
		e.deps = append(e.deps, dep)
	}
	return true
}

// Trigger notifies the effects subscribed to whichever Deps opType and
// info identify as affected by a mutation of target, per the
// GET/HAS/ITERATE-vs-SET/ADD/DELETE/CLEAR fan-out rules:
//
//   - Set on an existing key notifies only that key's Dep, plus
//     IterateKey for a map (a value mutation changes what a range over
//     the map's entries observes, even though the key set itself is
//     unchanged) — unless the mutated key is an array's "length", in
//     which case every index Dep at or beyond the new length is
//     notified too (truncation).
//   - Add notifies the key's Dep plus IterateKey (or an array's
//     "length" Dep instead of IterateKey, since appending doesn't
//     change enumeration order the way it does for a map/object), and
//     additionally MapKeyIterateKey for a map.
//   - Delete notifies the key's Dep plus IterateKey, and additionally
//     MapKeyIterateKey for a map. Arrays don't support Delete; removal
//     from a slice is modeled as a Set of "length" plus index Sets.
//   - Clear notifies every Dep ever registered for target.
func Trigger(target any, opType TriggerOpType, info TriggerInfo) {
	var deps []*Dep
	seen := make(map[*Dep]struct{})
	add := func(key Key) {
		d := GetDepFromReactive(target, key)
		if d == nil {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		deps = append(deps, d)
	}

	switch opType {
	case OpClear:
		forEachKeyDep(target, func(_ Key, d *Dep) {
			if _, ok := seen[d]; ok {
				return
			}
			seen[d] = struct{}{}
			deps = append(deps, d)
		})

	case OpSet:
		if info.HasKey {
			add(info.Key)
		}
		if info.IsMap {
			add(IterateKey)
		}
		if info.IsArray && info.Key == "length" {
			forEachKeyDep(target, func(k Key, d *Dep) {
				idx, ok := k.(int)
				if !ok || idx < info.NewLength {
					return
				}
				if _, ok := seen[d]; ok {
					return
				}
				seen[d] = struct{}{}
				deps = append(deps, d)
			})
		}

	case OpAdd:
		if info.HasKey {
			add(info.Key)
		}
		if info.IsArray {
			add("length")
		} else {
			add(IterateKey)
			if info.IsMap {
				add(MapKeyIterateKey)
			}
		}

	case OpDelete:
		if info.HasKey {
			add(info.Key)
		}
		add(IterateKey)
		if info.IsMap {
			add(MapKeyIterateKey)
		}
	}

	triggerDeps(deps)
}

// TriggerEffects notifies the effects subscribed to dep directly,
// bypassing the registry's key-selection logic. This is the low-level
// form ref/computed implementations use when they own a Dep directly.
func TriggerEffects(dep *Dep) {
	triggerDeps([]*Dep{dep})
}

// triggerDeps schedules every effect subscribed to any of deps exactly
// once, computed effects first (spec.md §4.4's two-phase ordering: a
// computed must recompute before the plain effects that read it see
// the new value).
func triggerDeps(deps []*Dep) {
	var computedEffects, plainEffects []*Effect
	triggeringDep := make(map[*Effect]*Dep)
	seenEffect := make(map[*Effect]struct{})

	for _, dep := range deps {
		for _, e := range dep.Effects() {
			if _, ok := seenEffect[e]; ok {
				continue
			}
			seenEffect[e] = struct{}{}
			triggeringDep[e] = dep
			if e.computed {
				computedEffects = append(computedEffects, e)
			} else {
				plainEffects = append(plainEffects, e)
			}
		}
	}

	for _, e := range computedEffects {
		triggerEffect(e, triggeringDep[e])
	}
	for _, e := range plainEffects {
		triggerEffect(e, triggeringDep[e])
	}
}

// triggerEffect runs or schedules a single effect in response to a
// trigger, unless it is the effect currently executing on this
// goroutine and it hasn't opted into AllowRecurse.
func triggerEffect(e *Effect, dep *Dep) {
	if e == getActiveEffect() && !e.allowRecurse {
		return
	}

	if e.onTrigger != nil {
		e.onTrigger(dep, nil)
	}

	if e.scheduler != nil {
		e.scheduler()
	} else {
		e.run()
	}
}
