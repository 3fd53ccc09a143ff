package main

import (
	"sort"
	"strings"

	"github.com/hollow-works/retrack/internal/errors"
	"github.com/spf13/cobra"
)

func runScenarioCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "run-scenario [name]",
		Short: "Run one of the built-in dependency-tracking scenarios",
		Long: `run-scenario runs a single named scenario demonstrating one
of the engine's tracking/trigger behaviors and prints a narrated trace
of what it observed at each step.

Examples:
  retrackctl run-scenario basic-dep
  retrackctl run-scenario --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				printScenarioList()
				return nil
			}
			return runScenario(args[0])
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available scenarios")

	return cmd
}

func printScenarioList() {
	names := make([]string, 0, len(scenarios))
	byName := make(map[string]scenario, len(scenarios))
	for _, s := range scenarios {
		names = append(names, s.name)
		byName[s.name] = s
	}
	sort.Strings(names)

	info("available scenarios:")
	for _, name := range names {
		info("  %-16s %s", name, byName[name].description)
	}
}

func runScenario(name string) error {
	s, ok := findScenario(name)
	if !ok {
		known := make([]string, 0, len(scenarios))
		for _, sc := range scenarios {
			known = append(known, sc.name)
		}
		return errors.New("E060").
			WithDetail("requested: " + name + "; known: " + strings.Join(known, ", ")).
			WithSuggestion("run `retrackctl run-scenario --list` to see available names")
	}

	info("%s — %s", s.name, s.description)
	lines, err := s.run()
	if err != nil {
		return errors.New("E061").Wrap(err).WithDetail("scenario " + name + " returned an error")
	}
	for _, line := range lines {
		info("%s", line)
	}
	success("scenario %q completed", name)
	return nil
}
