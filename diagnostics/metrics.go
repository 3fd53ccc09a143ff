package diagnostics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus side of diagnostics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "retrack").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to every metric.
	ConstLabels prometheus.Labels

	// Registerer is where metrics are registered. Default:
	// prometheus.DefaultRegisterer. The engine never starts its own HTTP
	// listener to expose these — scraping is entirely the host's concern.
	Registerer prometheus.Registerer
}

// MetricsOption configures a MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels applied to every metric.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithRegisterer sets the Prometheus registerer metrics are registered
// against.
func WithRegisterer(registerer prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registerer = registerer }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:  "retrack",
		Registerer: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the counters and histograms diagnostics registers.
type Metrics struct {
	effectRuns      *prometheus.CounterVec
	triggerFanOut   prometheus.Histogram
	scopeDisposals  prometheus.Counter
	activeEffects   prometheus.Gauge
	depthFallbacks  prometheus.Counter
}

var (
	global     *Metrics
	globalOnce sync.Once
	globalMu   sync.Mutex
)

// NewMetrics builds a Metrics instance registered against opts'
// Registerer (or prometheus.DefaultRegisterer by default).
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, apply := range opts {
		apply(&cfg)
	}

	factory := promauto.With(cfg.Registerer)

	return &Metrics{
		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect (re-)executions, labeled by whether the run was a computed recompute.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"computed"}),

		triggerFanOut: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "trigger_fan_out",
			Help:        "Number of effects scheduled by a single Trigger call.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}),

		scopeDisposals: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "scope_disposals_total",
			Help:        "Total number of EffectScope.Stop calls that actually disposed an active scope.",
			ConstLabels: cfg.ConstLabels,
		}),

		activeEffects: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "active_effects",
			Help:        "Number of effects currently active (created but not yet stopped).",
			ConstLabels: cfg.ConstLabels,
		}),

		depthFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "track_depth_fallbacks_total",
			Help:        "Total number of effect runs deep enough to fall back to full Dep clear-and-rebuild instead of the bitmask fast path.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Global returns the process-wide default Metrics, creating it on first
// use against prometheus.DefaultRegisterer.
func Global() *Metrics {
	globalOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		global = NewMetrics()
	})
	return global
}

// ObserveEffectRun records one effect execution.
func (m *Metrics) ObserveEffectRun(computed bool) {
	label := "false"
	if computed {
		label = "true"
	}
	m.effectRuns.WithLabelValues(label).Inc()
}

// ObserveTriggerFanOut records how many effects a single Trigger call
// scheduled.
func (m *Metrics) ObserveTriggerFanOut(count int) {
	m.triggerFanOut.Observe(float64(count))
}

// ObserveScopeDisposal records one EffectScope.Stop call that actually
// disposed a previously active scope.
func (m *Metrics) ObserveScopeDisposal() {
	m.scopeDisposals.Inc()
}

// SetActiveEffects sets the current active-effect gauge.
func (m *Metrics) SetActiveEffects(n int) {
	m.activeEffects.Set(float64(n))
}

// ObserveDepthFallback records one effect run that exceeded the
// bitmask fast path's depth cap.
func (m *Metrics) ObserveDepthFallback() {
	m.depthFallbacks.Inc()
}
