package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled toggles metric recording and the scrape endpoint.
	Enabled bool

	// ListenAddress is the address the scrape endpoint binds to.
	ListenAddress string

	// Namespace is the metric name prefix. Default: "beacon".
	Namespace string
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:       false,
		ListenAddress: ":9090",
		Namespace:     "beacon",
	}
}

// Collector owns the Prometheus metrics for the lifecycle engines.
// A nil Collector is valid and records nothing, so engines can take a
// collector without guarding every call site.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	// Fan-out metrics
	notificationsCreated prometheus.Counter
	fanoutFailures       prometheus.Counter
	fanoutDuration       prometheus.Histogram

	// Cleanup metrics
	cleanupRuns          *prometheus.CounterVec
	conversationsDeleted *prometheus.CounterVec
	messagesDeleted      *prometheus.CounterVec
	cleanupDuration      prometheus.Histogram
}

// NewCollector creates a new metrics collector and registers its
// metrics with the provided registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "beacon"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		notificationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "notifications_created_total",
			Help:      "Total number of notifications written by the match engine",
		}),

		fanoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "fanout_failures_total",
			Help:      "Total number of per-user notification writes that failed",
		}),

		fanoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "fanout_duration_seconds",
			Help:      "Duration of one fan-out over all subscriber preferences",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),

		cleanupRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "cleanup_runs_total",
			Help:      "Total number of cleanup runs by outcome",
		}, []string{"status"}),

		conversationsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "conversations_deleted_total",
			Help:      "Total number of conversations purged by policy",
		}, []string{"policy"}),

		messagesDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "messages_deleted_total",
			Help:      "Total number of messages purged by policy",
		}, []string{"policy"}),

		cleanupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "lifecycle",
			Name:      "cleanup_duration_seconds",
			Help:      "Duration of one full cleanup run",
			Buckets:   []float64{0.1, 0.5, 1.0, 5.0, 15.0, 60.0, 300.0},
		}),
	}

	registry.MustRegister(
		c.notificationsCreated,
		c.fanoutFailures,
		c.fanoutDuration,
		c.cleanupRuns,
		c.conversationsDeleted,
		c.messagesDeleted,
		c.cleanupDuration,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordFanout records the outcome of one fan-out pass.
func (c *Collector) RecordFanout(created, failures int, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.notificationsCreated.Add(float64(created))
	c.fanoutFailures.Add(float64(failures))
	c.fanoutDuration.Observe(duration.Seconds())
}

// RecordPolicyPurge records the deletions attributed to one retention
// policy ("found_items" or "stale_conversations").
func (c *Collector) RecordPolicyPurge(policy string, conversations, messages int) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.conversationsDeleted.WithLabelValues(policy).Add(float64(conversations))
	c.messagesDeleted.WithLabelValues(policy).Add(float64(messages))
}

// RecordCleanupRun records one completed cleanup run.
func (c *Collector) RecordCleanupRun(status string, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.cleanupRuns.WithLabelValues(status).Inc()
	c.cleanupDuration.Observe(duration.Seconds())
}
