package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	// CategoryScope covers EffectScope lifecycle misuse.
	CategoryScope Category = "scope"
	// CategoryTracking covers core dependency-tracking misuse and
	// degraded-mode conditions.
	CategoryTracking Category = "tracking"
	// CategoryConfig covers invalid Options passed to diagnostics, watch,
	// or reactive constructors.
	CategoryConfig Category = "config"
	// CategoryCLI covers errors surfaced by cmd/retrackctl.
	CategoryCLI Category = "cli"
)

// Location represents a source code location, set through
// WithLocation to point at the offending line of a file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// EngineError is a structured error with an optional source location,
// a fix suggestion, and documentation, for the engine's own
// recoverable-by-design conditions. It never wraps a panic or error
// coming out of a host's own effect function — those propagate
// untouched, since the engine has no business reinterpreting them.
type EngineError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (scope, tracking, config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred, when
	// known (mainly populated by cmd/retrackctl scenario parsing).
	Location *Location

	// Context contains surrounding source lines around Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EngineError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location to the error, reading the
// surrounding lines from file for Format's context display.
func (e *EngineError) WithLocation(file string, line, column int) *EngineError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *EngineError) WithSuggestion(s string) *EngineError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *EngineError) WithExample(ex string) *EngineError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *EngineError) WithDetail(d string) *EngineError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error, overriding
// whatever WithLocation read from disk.
func (e *EngineError) WithContext(lines []string) *EngineError {
	e.Context = lines
	return e
}

// Wrap attaches an underlying error.
func (e *EngineError) Wrap(err error) *EngineError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a
// file. Returns nil if the file can't be read, which is common for
// scope/tracking errors that have no associated source file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an EngineError from a registered error code.
func New(code string) *EngineError {
	template, ok := registry[code]
	if !ok {
		return &EngineError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &EngineError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new EngineError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *EngineError {
	return &EngineError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an EngineError.
func FromError(err error, code string) *EngineError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EngineError); ok {
		return ee
	}
	return New(code).Wrap(err)
}
