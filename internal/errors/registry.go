package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Scope errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryScope,
		Message:  "EffectScope already stopped",
		Detail:   "Run was called on a scope whose Stop method already ran. A stopped scope never resumes; create a new one instead.",
		DocURL:   "https://retrack.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryScope,
		Message:  "OnScopeDispose called with no active scope",
		Detail:   "OnScopeDispose registers a cleanup against the scope active on the calling goroutine. With none active the cleanup is silently dropped and will never run.",
		DocURL:   "https://retrack.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryScope,
		Message:  "effect created with no active scope and no explicit Scope option",
		Detail:   "The effect will never be stopped automatically; its Runner.Stop must be called directly, or it leaks for the life of the process.",
		DocURL:   "https://retrack.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryScope,
		Message:  "detached scope passed as a parent's child",
		Detail:   "A scope created with detached=true is never recorded under any parent, so stopping the would-be parent will not reach it.",
		DocURL:   "https://retrack.dev/docs/errors/E004",
	},

	// ============================================
	// Tracking errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryTracking,
		Message:  "recursion depth exceeded, falling back to full dependency re-link",
		Detail:   "An effect nested itself (directly or through other effects) past the supported recursion depth. Its dependency set is rebuilt from scratch every run instead of using the bitmask fast path, which still works but costs more per run.",
		DocURL:   "https://retrack.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryTracking,
		Message:  "effect re-triggered itself during its own run",
		Detail:   "A mutation performed inside an effect's function retriggered that same effect, and AllowRecurse was not set, so the re-entrant run was skipped rather than recursing.",
		DocURL:   "https://retrack.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryTracking,
		Message:  "Track or Trigger called for a target with no registered Dep",
		Detail:   "Trigger on a target.key pair that no effect has tracked yet is a no-op: there is no Dep, so nothing is notified. Track creates the Dep for any target, wrapped or not.",
		DocURL:   "https://retrack.dev/docs/errors/E022",
	},
	"E023": {
		Category: CategoryTracking,
		Message:  "reactive wrapper used after Close",
		Detail:   "Close calls core.Forget, dropping every Dep registered for the target. Effects subscribed before Close are no longer notified by writes through the wrapper; reads afterward register fresh Deps.",
		DocURL:   "https://retrack.dev/docs/errors/E023",
	},

	// ============================================
	// Config errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "diagnostics.Options has DevMode true but no Metrics or Tracer",
		Detail:   "Hooks will build onTrack/onTrigger/onStop closures that have nothing to report to, so every instrumented call does work for no observable effect.",
		DocURL:   "https://retrack.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "empty metrics namespace",
		Detail:   "WithNamespace was called with an empty string; Prometheus metric names would be registered without the retrack prefix, risking collisions with a host's own metrics.",
		DocURL:   "https://retrack.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryConfig,
		Message:  "nil source function passed to Watch",
		Detail:   "Watch's source function is called on every run to read the value to diff; a nil function panics on the first run instead of on construction.",
		DocURL:   "https://retrack.dev/docs/errors/E042",
	},
	"E043": {
		Category: CategoryConfig,
		Message:  "nil function passed to WatchEffect",
		DocURL:   "https://retrack.dev/docs/errors/E043",
	},

	// ============================================
	// CLI errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryCLI,
		Message:  "unknown scenario name",
		Detail:   "retrackctl run-scenario was given a name that doesn't match any registered scenario.",
		DocURL:   "https://retrack.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryCLI,
		Message:  "scenario run failed",
		Detail:   "A registered scenario's function returned an error while running.",
		DocURL:   "https://retrack.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryCLI,
		Message:  "invalid output format",
		Detail:   "The --format flag must be one of: text, json.",
		DocURL:   "https://retrack.dev/docs/errors/E062",
	},
	"E063": {
		Category: CategoryCLI,
		Message:  "inspect target not found",
		Detail:   "retrackctl inspect was given a target that has no tracked dependency graph to print.",
		DocURL:   "https://retrack.dev/docs/errors/E063",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
