package main

import (
	"fmt"

	"github.com/hollow-works/retrack/core"
	"github.com/hollow-works/retrack/reactive"
)

// scenario is a self-contained demonstration of one tracking/trigger
// behavior, runnable in isolation and reporting a line of output per
// observation so a reader can follow the dependency graph reacting.
type scenario struct {
	name        string
	description string
	run         func() ([]string, error)
}

var scenarios = []scenario{
	{
		name:        "basic-dep",
		description: "effect reads o.a twice, a SET retriggers it exactly once",
		run:         runBasicDep,
	},
	{
		name:        "branch-switch",
		description: "effect switches which key it depends on across runs",
		run:         runBranchSwitch,
	},
	{
		name:        "array-length",
		description: "truncating a slice's length retriggers readers of dropped indices",
		run:         runArrayLength,
	},
	{
		name:        "map-iteration",
		description: "adding or setting a map key retriggers iteration readers",
		run:         runMapIteration,
	},
	{
		name:        "nested-effects",
		description: "an inner effect's dependency change reruns only the inner effect",
		run:         runNestedEffects,
	},
	{
		name:        "scope-dispose",
		description: "stopping a scope disposes every effect and cleanup it owns",
		run:         runScopeDispose,
	},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

type obj struct {
	a, x, y int
	flag    bool
}

func runBasicDep() ([]string, error) {
	var lines []string
	o := &obj{a: 1}
	observed := 0

	runner := core.NewEffect(func() {
		core.Track(o, core.OpGet, "a")
		core.Track(o, core.OpGet, "a")
		observed = o.a
	}, core.EffectOptions{})
	defer runner.Stop()

	lines = append(lines, fmt.Sprintf("initial observation: a=%d", observed))

	o.a = 2
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "a", HasKey: true})
	lines = append(lines, fmt.Sprintf("after trigger(o, SET, \"a\"): a=%d", observed))

	return lines, nil
}

func runBranchSwitch() ([]string, error) {
	var lines []string
	o := &obj{flag: true, x: 10, y: 20}
	var observedKey string
	var observedVal int

	runner := core.NewEffect(func() {
		core.Track(o, core.OpGet, "flag")
		if o.flag {
			core.Track(o, core.OpGet, "x")
			observedKey, observedVal = "x", o.x
		} else {
			core.Track(o, core.OpGet, "y")
			observedKey, observedVal = "y", o.y
		}
	}, core.EffectOptions{})
	defer runner.Stop()

	lines = append(lines, fmt.Sprintf("initial: reading %s=%d", observedKey, observedVal))

	o.flag = false
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "flag", HasKey: true})
	lines = append(lines, fmt.Sprintf("after flag flip: reading %s=%d", observedKey, observedVal))

	o.x = 999
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "x", HasKey: true})
	lines = append(lines, fmt.Sprintf("after writing stale dep x (expect no change): reading %s=%d", observedKey, observedVal))

	o.y = 42
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "y", HasKey: true})
	lines = append(lines, fmt.Sprintf("after writing live dep y (expect update): reading %s=%d", observedKey, observedVal))

	return lines, nil
}

func runArrayLength() ([]string, error) {
	var lines []string
	s := reactive.NewSlice(10, 20, 30)
	defer s.Close()

	runs := 0
	var lastVal int
	var lastOK bool
	runner := core.NewEffect(func() {
		runs++
		if s.Len() > 2 {
			lastVal, lastOK = s.Get(2), true
		} else {
			lastVal, lastOK = 0, false
		}
	}, core.EffectOptions{})
	defer runner.Stop()

	lines = append(lines, fmt.Sprintf("initial: a[2]=%d ok=%v runs=%d", lastVal, lastOK, runs))

	s.SetLength(1)
	lines = append(lines, fmt.Sprintf("after SetLength(1): a[2]=%d ok=%v runs=%d", lastVal, lastOK, runs))

	return lines, nil
}

func runMapIteration() ([]string, error) {
	var lines []string
	m := reactive.NewMap[string, int]()
	defer m.Close()
	m.Set("k1", 1)

	runs := 0
	var seen int
	runner := core.NewEffect(func() {
		runs++
		n := 0
		m.Range(func(string, int) bool {
			n++
			return true
		})
		seen = n
	}, core.EffectOptions{})
	defer runner.Stop()

	lines = append(lines, fmt.Sprintf("initial: keys seen=%d runs=%d", seen, runs))

	m.Set("k2", 2)
	lines = append(lines, fmt.Sprintf("after Set(k2) add: keys seen=%d runs=%d", seen, runs))

	m.Set("k2", 3)
	lines = append(lines, fmt.Sprintf("after Set(k2) update: keys seen=%d runs=%d", seen, runs))

	return lines, nil
}

func runNestedEffects() ([]string, error) {
	var lines []string
	o := &obj{x: 1}
	outerRuns, innerRuns := 0, 0
	var innerRunner *core.Runner

	outer := core.NewEffect(func() {
		outerRuns++
		innerRunner = core.NewEffect(func() {
			innerRuns++
			core.Track(o, core.OpGet, "x")
		}, core.EffectOptions{})
	}, core.EffectOptions{})
	defer outer.Stop()
	defer func() {
		if innerRunner != nil {
			innerRunner.Stop()
		}
	}()

	lines = append(lines, fmt.Sprintf("initial: outerRuns=%d innerRuns=%d", outerRuns, innerRuns))

	o.x = 2
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "x", HasKey: true})
	lines = append(lines, fmt.Sprintf("after writing o.x: outerRuns=%d innerRuns=%d (outer must stay 1)", outerRuns, innerRuns))

	return lines, nil
}

func runScopeDispose() ([]string, error) {
	var lines []string
	o := &obj{x: 1, y: 1}
	cleanupCalls := 0
	e1Runs, e2Runs := 0, 0

	scope := core.NewEffectScope(false)
	var r1, r2 *core.Runner
	scope.Run(func() {
		r1 = core.NewEffect(func() {
			e1Runs++
			core.Track(o, core.OpGet, "x")
		}, core.EffectOptions{})
		r2 = core.NewEffect(func() {
			e2Runs++
			core.Track(o, core.OpGet, "y")
		}, core.EffectOptions{})
		core.OnScopeDispose(func() { cleanupCalls++ })
	})

	lines = append(lines, fmt.Sprintf("before stop: e1Runs=%d e2Runs=%d active1=%v active2=%v",
		e1Runs, e2Runs, r1.Effect().IsActive(), r2.Effect().IsActive()))

	scope.Stop(false)
	lines = append(lines, fmt.Sprintf("after stop: active1=%v active2=%v cleanupCalls=%d",
		r1.Effect().IsActive(), r2.Effect().IsActive(), cleanupCalls))

	o.x = 2
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "x", HasKey: true})
	o.y = 2
	core.Trigger(o, core.OpSet, core.TriggerInfo{Key: "y", HasKey: true})
	lines = append(lines, fmt.Sprintf("after mutating disposed deps: e1Runs=%d e2Runs=%d (expect unchanged)", e1Runs, e2Runs))

	return lines, nil
}
