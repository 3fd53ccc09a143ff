package main

import (
	"fmt"
	"os"

	"github.com/hollow-works/retrack/internal/errors"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗┌─┐┌┬┐┬─┐┌─┐┌─┐┬┌─
  ╠╦╝├┤  │ ├┬┘├─┤│  ├┴┐
  ╩╚═└─┘ ┴ ┴└─┴ ┴└─┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "retrackctl",
		Short: "Inspect and demonstrate the retrack reactive effect engine",
		Long: `retrackctl is a companion CLI for the retrack reactive effect
engine. It runs canned dependency-tracking scenarios and prints a
narrated trace of what each one observes, and builds a small
demonstration object to print its live dependency graph.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		runScenarioCmd(),
		inspectCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(*errors.EngineError); ok {
			errors.PrintError(ee)
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Print(banner)
}

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
