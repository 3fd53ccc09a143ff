package core

import (
	"log/slog"
	"sync"

	"github.com/hollow-works/retrack/internal/errors"
)

// Options configures the engine's ambient behavior: where misuse
// warnings go and whether development-only diagnostics are active.
// Mirrors the teacher's Config shape (Logger *slog.Logger, DevMode
// bool) rather than threading a context through every call, since
// spec.md §6 fixes Track/Trigger/NewEffect/NewEffectScope's signatures
// and leaves no room for an extra parameter.
type Options struct {
	// Logger receives warnings for spec.md §7 kind-2 misuse (scope.Run
	// on an inactive scope, OnScopeDispose with no active scope). Nil
	// means slog.Default().
	Logger *slog.Logger

	// DevMode gates misuse warnings, per spec.md §7: "logged via the
	// warning channel in development builds, no-op in production." It
	// does not gate per-effect OnTrack/OnTrigger/OnStop callbacks: core
	// invokes those whenever they are set, whatever DevMode says.
	DevMode bool
}

var (
	optionsMu sync.RWMutex
	options   = Options{DevMode: false}
)

// Configure replaces the process-wide Options used for misuse warnings.
// Safe to call at any point; it does not affect Effects or Scopes
// already created.
func Configure(opts Options) {
	optionsMu.Lock()
	defer optionsMu.Unlock()
	options = opts
}

func currentOptions() Options {
	optionsMu.RLock()
	defer optionsMu.RUnlock()
	return options
}

func logger() *slog.Logger {
	if l := currentOptions().Logger; l != nil {
		return l
	}
	return slog.Default()
}

// warnMisuse logs a spec.md §7 kind-2 misuse condition through the
// warning channel when DevMode is on, and is a no-op otherwise. code
// identifies the registered internal/errors template so the log line
// carries the same detail and doc link cmd/retrackctl surfaces for the
// same condition.
func warnMisuse(code string, args ...any) {
	if !currentOptions().DevMode {
		return
	}
	ee := errors.New(code)
	logger().Warn(ee.Message, append([]any{"code", ee.Code, "detail", ee.Detail, "doc", ee.DocURL}, args...)...)
}
