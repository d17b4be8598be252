package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"microservice-loadtest/internal/models"
)

// ProbeCollector counts probe attempts on its own registry so that several
// probers (and tests) never share global state.
type ProbeCollector struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewProbeCollector() *ProbeCollector {
	c := &ProbeCollector{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadtest_probe_attempts_total",
				Help: "Total number of probe attempts issued",
			},
			[]string{"endpoint"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loadtest_probe_failures_total",
				Help: "Total number of probe attempts that failed at the transport layer",
			},
			[]string{"endpoint"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loadtest_probe_duration_seconds",
				Help:    "Latency of probe attempts",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}

	c.registry.MustRegister(c.attempts, c.failures, c.duration)
	return c
}

// Observe counts one attempt. A failed attempt never completed an exchange,
// so it only feeds the failure counter and stays out of the latency
// histogram.
func (c *ProbeCollector) Observe(result models.ProbeResult) {
	c.attempts.WithLabelValues(result.Endpoint).Inc()
	if result.Failed() {
		c.failures.WithLabelValues(result.Endpoint).Inc()
		return
	}
	c.duration.WithLabelValues(result.Endpoint).Observe(result.Duration.Seconds())
}

func (c *ProbeCollector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *ProbeCollector) Attempts() *prometheus.CounterVec {
	return c.attempts
}

func (c *ProbeCollector) Failures() *prometheus.CounterVec {
	return c.failures
}

// Summary gathers the registry into per-endpoint stats, sorted by endpoint.
func (c *ProbeCollector) Summary() ([]models.EndpointStats, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}

	byEndpoint := make(map[string]*models.EndpointStats)
	stats := func(m *dto.Metric) *models.EndpointStats {
		endpoint := labelValue(m, "endpoint")
		s, ok := byEndpoint[endpoint]
		if !ok {
			s = &models.EndpointStats{Endpoint: endpoint}
			byEndpoint[endpoint] = s
		}
		return s
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch family.GetName() {
			case "loadtest_probe_attempts_total":
				stats(m).Attempts = int(m.GetCounter().GetValue())
			case "loadtest_probe_failures_total":
				stats(m).Failures = int(m.GetCounter().GetValue())
			case "loadtest_probe_duration_seconds":
				h := m.GetHistogram()
				if h.GetSampleCount() > 0 {
					mean := h.GetSampleSum() / float64(h.GetSampleCount())
					stats(m).MeanLatency = time.Duration(mean * float64(time.Second))
				}
			}
		}
	}

	out := make([]models.EndpointStats, 0, len(byEndpoint))
	for _, s := range byEndpoint {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, pair := range m.GetLabel() {
		if pair.GetName() == name {
			return pair.GetValue()
		}
	}
	return ""
}
