package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbukum/restkit/rest"
)

// Config configures the Prometheus collector.
type Config struct {
	Enabled   bool      `yaml:"enabled" mapstructure:"enabled"`
	Namespace string    `yaml:"namespace" mapstructure:"namespace"`
	Subsystem string    `yaml:"subsystem" mapstructure:"subsystem"`
	Buckets   []float64 `yaml:"buckets" mapstructure:"buckets"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Namespace == "" {
		c.Namespace = "restkit"
	}
	if c.Subsystem == "" {
		c.Subsystem = "dispatch"
	}
	if len(c.Buckets) == 0 {
		c.Buckets = prometheus.DefBuckets
	}
}

// Collector counts dispatches by method, category and status and observes
// their duration. Labels never carry URLs.
type Collector struct {
	gatherer prometheus.Gatherer
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

var _ rest.Observer = (*Collector)(nil)

// New registers the collector's instruments on reg. A nil reg uses a fresh
// registry.
func New(cfg Config, reg *prometheus.Registry) *Collector {
	cfg.ApplyDefaults()
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Collector{
		gatherer: reg,
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "total",
			Help:      "Total number of completed dispatches, by method, category and status.",
		}, []string{"method", "category", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "duration_seconds",
			Help:      "Dispatch duration from send to stop, by method and category.",
			Buckets:   cfg.Buckets,
		}, []string{"method", "category"}),
		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "in_flight",
			Help:      "Dispatches sent but not yet completed.",
		}),
	}
}

// ObserveDispatch implements rest.Observer.
func (c *Collector) ObserveDispatch(_ context.Context, ev rest.DispatchEvent) {
	category := ev.Category.String()
	c.total.WithLabelValues(ev.Method, category, strconv.Itoa(ev.Status)).Inc()
	c.duration.WithLabelValues(ev.Method, category).Observe(ev.Duration.Seconds())
}

// Track wraps a transport so the in-flight gauge follows every send.
func (c *Collector) Track(next rest.Transport) rest.Transport {
	return rest.TransportFunc(func(ctx context.Context, req *rest.TransportRequest) rest.Outcome {
		c.inflight.Inc()
		defer c.inflight.Dec()
		return next.Send(ctx, req)
	})
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
