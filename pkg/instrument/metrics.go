package instrument

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/listen/pkg/listener"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "listen").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "listen",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the listener collectors. One Metrics is shared by every
// registrar it wraps.
type Metrics struct {
	registrations   *prometheus.CounterVec
	unregistrations prometheus.Counter
	forgets         prometheus.Counter
	delivered       *prometheus.CounterVec
	attached        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them. Collectors that are
// already registered with the same description are reused.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registrations_total",
			Help:        "Total number of listener registrations",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "mode"}),

		unregistrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unregistrations_total",
			Help:        "Total number of listeners detached by explicit discard",
			ConstLabels: config.ConstLabels,
		}),

		forgets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "forgets_total",
			Help:        "Total number of listeners left attached by implicit teardown",
			ConstLabels: config.ConstLabels,
		}),

		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_delivered_total",
			Help:        "Total number of events delivered to listener callbacks",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		attached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handles_attached",
			Help:        "Number of listener handles not yet torn down",
			ConstLabels: config.ConstLabels,
		}),
	}

	if config.Registry != nil {
		m.registrations = register(config.Registry, m.registrations)
		m.unregistrations = register(config.Registry, m.unregistrations)
		m.forgets = register(config.Registry, m.forgets)
		m.delivered = register(config.Registry, m.delivered)
		m.attached = register(config.Registry, m.attached)
	}
	return m
}

// register registers c, returning the existing collector if an identical
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Wrap returns a Registrar that records metrics and forwards to next.
func (m *Metrics) Wrap(next listener.Registrar) listener.Registrar {
	return &metricsRegistrar{next: next, m: m}
}

type metricsRegistrar struct {
	next listener.Registrar
	m    *Metrics
}

func (r *metricsRegistrar) Register(target listener.Target, name string, opts listener.Options, cb func(listener.Event)) listener.Token {
	mode := "persistent"
	if opts.Once {
		mode = "once"
	}
	t := r.next.Register(target, name, opts, r.count(name, cb))
	r.m.registrations.WithLabelValues(name, mode).Inc()
	r.m.attached.Inc()
	return t
}

func (r *metricsRegistrar) RegisterOnce(target listener.Target, name string, cb func(listener.Event)) listener.Token {
	t := r.next.RegisterOnce(target, name, r.count(name, cb))
	r.m.registrations.WithLabelValues(name, "once").Inc()
	r.m.attached.Inc()
	return t
}

func (r *metricsRegistrar) Unregister(t listener.Token) {
	r.next.Unregister(t)
	r.m.unregistrations.Inc()
	r.m.attached.Dec()
}

func (r *metricsRegistrar) Forget(t listener.Token) {
	r.next.Forget(t)
	r.m.forgets.Inc()
	r.m.attached.Dec()
}

func (r *metricsRegistrar) count(name string, cb func(listener.Event)) func(listener.Event) {
	c := r.m.delivered.WithLabelValues(name)
	return func(e listener.Event) {
		c.Inc()
		cb(e)
	}
}
