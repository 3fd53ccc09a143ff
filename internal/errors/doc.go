// Package errors provides structured, actionable error messages for
// retrack's own tooling and misuse diagnostics.
//
// The errors package implements a small error system that:
//   - Carries a stable code and category for programmatic matching
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - scope: EffectScope lifecycle misuse (running or nesting under a
//     stopped scope, disposing with nothing active)
//   - tracking: core dependency-tracking misuse and degraded-mode
//     conditions (recursion depth fallback, stale context)
//   - config: invalid Options passed to diagnostics or watch
//   - cli: errors surfaced by cmd/retrackctl
//
// # Error Codes
//
// Each error has a unique code (e.g., "E001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E001").
//	    WithSuggestion("call scope.Stop() exactly once, guard re-entry with IsActive")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: EffectScope already stopped
//	//
//	//   Run was called on a scope whose Stop method already ran. A stopped
//	//   scope never resumes; create a new one instead.
//	//
//	//   Hint: call scope.Stop() exactly once, guard re-entry with IsActive
//	//
//	//   Learn more: https://retrack.dev/docs/errors/E001
package errors
