// Package telemetry publishes load metrics emitted by the catalog engine.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures telemetry events emitted during catalog loads.
//
// Implementations should be inexpensive to call because hooks run inline
// with the load path.
type Collector interface {
	IncLoad()
	IncFailure(kind string)
	ObserveLoadSeconds(seconds float64)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncLoad()                   {}
func (noopCollector) IncFailure(string)          {}
func (noopCollector) ObserveLoadSeconds(float64) {}

// PrometheusCollector exposes load counters via Prometheus.
type PrometheusCollector struct {
	loads    prometheus.Counter
	failures *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewPrometheusCollector registers the required metrics with the provided
// registerer. A nil registerer falls back to the default one. Metrics that
// another collector already registered are reused.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	loads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clusterfile_loads_total",
		Help: "Number of catalog loads that completed successfully.",
	})
	if err := reg.Register(loads); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			loads = already.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clusterfile_load_failures_total",
		Help: "Number of catalog loads aborted, by violation kind.",
	}, []string{"kind"})
	if err := reg.Register(failures); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = already.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clusterfile_load_duration_seconds",
		Help:    "Wall-clock duration of catalog loads.",
		Buckets: prometheus.DefBuckets,
	})
	if err := reg.Register(duration); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = already.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PrometheusCollector{loads: loads, failures: failures, duration: duration}, nil
}

// IncLoad implements Collector.
func (c *PrometheusCollector) IncLoad() {
	c.loads.Inc()
}

// IncFailure implements Collector.
func (c *PrometheusCollector) IncFailure(kind string) {
	c.failures.WithLabelValues(kind).Inc()
}

// ObserveLoadSeconds implements Collector.
func (c *PrometheusCollector) ObserveLoadSeconds(seconds float64) {
	c.duration.Observe(seconds)
}
