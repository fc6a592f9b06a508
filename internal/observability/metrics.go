// Package observability holds Prometheus metrics and OpenTelemetry tracing
// setup for the celestial service.
package observability

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service metrics. It satisfies celestial.Hooks so
// the pipeline can report tier failures and circumpolar events directly.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests       *prometheus.CounterVec
	Durations      *prometheus.HistogramVec
	TierFailures   *prometheus.CounterVec
	CircumpolarHit *prometheus.CounterVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "celestial_requests_total",
		Help: "Handled body requests, labeled by body and HTTP status code.",
	}, []string{"body", "code"}), "celestial_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "celestial_request_duration_seconds",
		Help:    "Body request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"body"}), "celestial_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "celestial_tier_failures_total",
		Help: "Pipeline tier failures, labeled by body and tier.",
	}, []string{"body", "tier"}), "celestial_tier_failures_total")
	if err != nil {
		return nil, err
	}

	circumpolar, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "celestial_circumpolar_total",
		Help: "Rise or set events replaced by a circumpolar notice.",
	}, []string{"body", "event"}), "celestial_circumpolar_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Requests:       requests,
		Durations:      durations,
		TierFailures:   failures,
		CircumpolarHit: circumpolar,
	}, nil
}

// ObserveRequest records one handled request.
func (c *Collector) ObserveRequest(body string, status int, seconds float64) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(body, strconv.Itoa(status)).Inc()
	c.Durations.WithLabelValues(body).Observe(seconds)
}

// TierFailed counts a failed pipeline tier.
func (c *Collector) TierFailed(body, tier string) {
	if c == nil {
		return
	}
	c.TierFailures.WithLabelValues(body, tier).Inc()
}

// Circumpolar counts a circumpolar rise or set.
func (c *Collector) Circumpolar(body, event string) {
	if c == nil {
		return
	}
	c.CircumpolarHit.WithLabelValues(body, event).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
