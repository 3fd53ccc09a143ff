package main

import (
	"fmt"
	"sort"

	"github.com/hollow-works/retrack/core"
	"github.com/hollow-works/retrack/reactive"
	"github.com/spf13/cobra"
)

// counters is inspect's demonstration object: two fields, tracked
// independently through reactive.Field.
type counters struct {
	count int
	name  string
}

func inspectCmd() *cobra.Command {
	var effects int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build a small reactive object and print its dependency graph",
		Long: `inspect wires up a demonstration object with --effects
independent effects reading different fields, then prints each
tracked key alongside its live subscriber count via core.Inspect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(effects)
		},
	}

	cmd.Flags().IntVarP(&effects, "effects", "n", 3, "number of effects to attach")
	return cmd
}

func runInspect(n int) error {
	if n < 1 {
		n = 1
	}

	obj := reactive.NewObject(&counters{})
	defer obj.Close()

	countField := reactive.NewField(obj, "count",
		func(c *counters) int { return c.count },
		func(c *counters, v int) { c.count = v })
	nameField := reactive.NewField(obj, "name",
		func(c *counters) string { return c.name },
		func(c *counters, v string) { c.name = v })

	var runners []*core.Runner
	for i := 0; i < n; i++ {
		i := i
		runner := core.NewEffect(func() {
			_ = countField.Get()
			if i%2 == 0 {
				_ = nameField.Get()
			}
		}, core.EffectOptions{})
		runners = append(runners, runner)
	}
	defer func() {
		for _, r := range runners {
			r.Stop()
		}
	}()

	info("dependency graph for %d effect(s):", n)
	snapshots := core.Inspect(obj.Raw())
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshotKey(snapshots[i]) < snapshotKey(snapshots[j])
	})
	for _, snap := range snapshots {
		info("  %-10v subscribers=%d", snap.Key, snap.Subscribers)
	}

	return nil
}

func snapshotKey(s core.Snapshot) string {
	return fmt.Sprintf("%v", s.Key)
}
