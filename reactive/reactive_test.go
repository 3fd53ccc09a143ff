package reactive

import (
	"testing"

	"github.com/hollow-works/retrack/core"
)

type person struct {
	Name string
	Age  int
}

func TestObjectFieldTracksIndependently(t *testing.T) {
	obj := NewObject(&person{Name: "Ada", Age: 30})
	name := NewField(obj, "name", func(p *person) string { return p.Name }, func(p *person, v string) { p.Name = v })
	age := NewField(obj, "age", func(p *person) int { return p.Age }, func(p *person, v int) { p.Age = v })

	nameRuns, ageRuns := 0, 0
	core.NewEffect(func() { nameRuns++; name.Get() }, core.EffectOptions{})
	core.NewEffect(func() { ageRuns++; age.Get() }, core.EffectOptions{})

	age.Set(31)
	if ageRuns != 2 {
		t.Fatalf("ageRuns = %d, want 2", ageRuns)
	}
	if nameRuns != 1 {
		t.Fatalf("setting age must not rerun the name effect, nameRuns=%d", nameRuns)
	}

	name.Set("Grace")
	if nameRuns != 2 {
		t.Fatalf("nameRuns = %d, want 2", nameRuns)
	}
}

func TestObjectCloseForgetsDeps(t *testing.T) {
	obj := NewObject(&person{Name: "Ada"})
	name := NewField(obj, "name", func(p *person) string { return p.Name }, func(p *person, v string) { p.Name = v })

	runs := 0
	core.NewEffect(func() { runs++; name.Get() }, core.EffectOptions{})

	obj.Close()
	name.Set("Grace") // registry forgotten, new Dep created, old effect not subscribed to it

	if runs != 1 {
		t.Fatalf("effect subscribed before Close should not rerun after Close, runs=%d", runs)
	}
}

func TestMapGetSetAddVsUpdate(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)

	runs := 0
	var seen int
	core.NewEffect(func() {
		runs++
		v, _ := m.Get("a")
		seen = v
	}, core.EffectOptions{})

	m.Set("a", 2) // update, same key
	if runs != 2 || seen != 2 {
		t.Fatalf("after update: runs=%d seen=%d", runs, seen)
	}

	m.Set("b", 100) // different key, must not rerun the "a" watcher
	if runs != 2 {
		t.Fatalf("unrelated key Set should not rerun, runs=%d", runs)
	}
}

func TestMapLenTracksIterateKey(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)

	runs := 0
	var seen int
	core.NewEffect(func() {
		runs++
		seen = m.Len()
	}, core.EffectOptions{})

	m.Set("a", 2) // value update on an existing key still fans out to IterateKey
	if runs != 2 {
		t.Fatalf("updating an existing key should rerun a Len() watcher (SET fans out to IterateKey for maps), runs=%d", runs)
	}

	m.Set("b", 3) // add, length changes
	if runs != 3 || seen != 2 {
		t.Fatalf("after add: runs=%d seen=%d", runs, seen)
	}

	m.Delete("b")
	if runs != 4 || seen != 1 {
		t.Fatalf("after delete: runs=%d seen=%d", runs, seen)
	}
}

func TestMapKeysTracksMapKeyIterateKey(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)

	runs := 0
	core.NewEffect(func() {
		runs++
		m.Keys()
	}, core.EffectOptions{})

	m.Set("a", 2) // value update, not a key-set change
	if runs != 1 {
		t.Fatalf("updating a value should not rerun a Keys() watcher, runs=%d", runs)
	}

	m.Set("b", 3)
	if runs != 2 {
		t.Fatalf("adding a key should rerun a Keys() watcher, runs=%d", runs)
	}
}

func TestMapClearNotifiesEverything(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	aRuns, lenRuns := 0, 0
	core.NewEffect(func() { aRuns++; m.Get("a") }, core.EffectOptions{})
	core.NewEffect(func() { lenRuns++; m.Len() }, core.EffectOptions{})

	m.Clear()

	if aRuns != 2 || lenRuns != 2 {
		t.Fatalf("Clear should notify every registered Dep: aRuns=%d lenRuns=%d", aRuns, lenRuns)
	}
}

func TestSliceGetSetIndexIndependence(t *testing.T) {
	s := NewSlice(1, 2, 3)

	run0, run1 := 0, 0
	core.NewEffect(func() { run0++; s.Get(0) }, core.EffectOptions{})
	core.NewEffect(func() { run1++; s.Get(1) }, core.EffectOptions{})

	s.Set(0, 100)
	if run0 != 2 {
		t.Fatalf("run0 = %d, want 2", run0)
	}
	if run1 != 1 {
		t.Fatalf("setting index 0 must not rerun index 1's watcher, run1=%d", run1)
	}
}

func TestSlicePushNotifiesLenWatchers(t *testing.T) {
	s := NewSlice(1, 2)

	runs := 0
	var seen int
	core.NewEffect(func() {
		runs++
		seen = s.Len()
	}, core.EffectOptions{})

	s.Push(3)
	if runs != 2 || seen != 3 {
		t.Fatalf("after Push: runs=%d seen=%d", runs, seen)
	}
}

func TestSliceSetLengthTruncationNotifiesDroppedIndex(t *testing.T) {
	s := NewSlice(1, 2, 3, 4)

	runs := 0
	core.NewEffect(func() { runs++; s.Get(3) }, core.EffectOptions{})

	s.SetLength(2)
	if runs != 2 {
		t.Fatalf("truncating past index 3 should rerun its watcher, runs=%d", runs)
	}
}

func TestSliceRangeTracksLength(t *testing.T) {
	s := NewSlice(1, 2, 3)

	runs := 0
	core.NewEffect(func() {
		runs++
		s.Range(func(i int, v int) bool { return true })
	}, core.EffectOptions{})

	s.Push(4)
	if runs != 2 {
		t.Fatalf("Push should rerun a Range() watcher, runs=%d", runs)
	}
}

func TestSlicePop(t *testing.T) {
	s := NewSlice(1, 2, 3)

	v, ok := s.Pop()
	if !ok || v != 3 {
		t.Fatalf("Pop() = (%v, %v), want (3, true)", v, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() after Pop = %d, want 2", s.Len())
	}

	empty := NewSlice[int]()
	_, ok = empty.Pop()
	if ok {
		t.Fatalf("Pop() on empty slice should report ok=false")
	}
}
