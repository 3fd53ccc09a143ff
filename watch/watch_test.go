package watch

import (
	"testing"

	"github.com/hollow-works/retrack/ref"
)

func TestWatchEffectRunsImmediatelyAndOnChange(t *testing.T) {
	count := ref.New(0)

	runs := 0
	var seen int
	stop := WatchEffect(func() {
		runs++
		seen = count.Get()
	})
	defer stop()

	if runs != 1 || seen != 0 {
		t.Fatalf("initial run: runs=%d seen=%d", runs, seen)
	}

	count.Set(5)
	if runs != 2 || seen != 5 {
		t.Fatalf("after change: runs=%d seen=%d", runs, seen)
	}
}

func TestWatchEffectStopUnsubscribes(t *testing.T) {
	count := ref.New(0)

	runs := 0
	stop := WatchEffect(func() {
		runs++
		count.Get()
	})

	stop()
	count.Set(1)

	if runs != 1 {
		t.Fatalf("stopped WatchEffect should not rerun, runs=%d", runs)
	}
}

func TestWatchFiresOnlyOnChangeNotOnInitialRun(t *testing.T) {
	name := ref.New("a")

	calls := 0
	var gotNew, gotOld string
	stop := Watch(func() string { return name.Get() }, func(newVal, oldVal string) {
		calls++
		gotNew, gotOld = newVal, oldVal
	})
	defer stop()

	if calls != 0 {
		t.Fatalf("Watch without Immediate should not call back on setup, calls=%d", calls)
	}

	name.Set("b")
	if calls != 1 || gotNew != "b" || gotOld != "a" {
		t.Fatalf("calls=%d new=%q old=%q", calls, gotNew, gotOld)
	}
}

func TestWatchImmediateFiresWithSameOldAndNew(t *testing.T) {
	name := ref.New("x")

	var gotNew, gotOld string
	calls := 0
	stop := Watch(func() string { return name.Get() }, func(newVal, oldVal string) {
		calls++
		gotNew, gotOld = newVal, oldVal
	}, ImmediateOpt())
	defer stop()

	if calls != 1 || gotNew != "x" || gotOld != "x" {
		t.Fatalf("immediate call: calls=%d new=%q old=%q", calls, gotNew, gotOld)
	}
}

func TestWatchFlushPostDefersUntilFlush(t *testing.T) {
	count := ref.New(0)

	calls := 0
	stop := Watch(func() int { return count.Get() }, func(newVal, oldVal int) {
		calls++
	}, FlushOpt(FlushPost))
	defer stop()

	count.Set(1)
	if calls != 0 {
		t.Fatalf("FlushPost callback should not run synchronously, calls=%d", calls)
	}
	if PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", PendingCount())
	}

	Flush()
	if calls != 1 {
		t.Fatalf("callback should run after Flush(), calls=%d", calls)
	}
	if PendingCount() != 0 {
		t.Fatalf("queue should be empty after Flush(), PendingCount()=%d", PendingCount())
	}
}

func TestWatchFlushPostCoalescesMultipleChanges(t *testing.T) {
	count := ref.New(0)

	calls := 0
	stop := Watch(func() int { return count.Get() }, func(newVal, oldVal int) {
		calls++
	}, FlushOpt(FlushPost))
	defer stop()

	count.Set(1)
	count.Set(2)
	count.Set(3)

	if PendingCount() != 1 {
		t.Fatalf("multiple changes before Flush should coalesce into one pending entry, got %d", PendingCount())
	}

	Flush()
	if calls != 1 {
		t.Fatalf("coalesced changes should produce exactly one callback, calls=%d", calls)
	}
}
