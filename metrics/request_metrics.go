package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type RequestMetricsCollector struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var (
	globalCollector *RequestMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *RequestMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &RequestMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "accuweather_requests_total",
					Help: "The total number of API requests by operation and outcome",
				},
				[]string{"operation", "outcome"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "accuweather_request_failures_total",
					Help: "The total number of failed API requests by operation",
				},
				[]string{"operation"},
			),
			Duration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "accuweather_request_duration_seconds",
					Help:    "API request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"operation"},
			),
		}
	})
	return globalCollector
}

// RequestMetrics records per-operation request outcomes for one Connection.
type RequestMetrics struct {
	requests  int64
	failures  int64
	collector *RequestMetricsCollector
	mu        sync.RWMutex
}

func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{
		collector: getCollector(),
	}
}

// RecordSuccess counts a completed request and observes its duration.
func (m *RequestMetrics) RecordSuccess(operation string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.collector.Requests.WithLabelValues(operation, "success").Inc()
	m.collector.Duration.WithLabelValues(operation).Observe(seconds)
}

// RecordFailure counts a failed request under the given outcome label.
func (m *RequestMetrics) RecordFailure(operation, outcome string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.failures++
	m.collector.Requests.WithLabelValues(operation, outcome).Inc()
	m.collector.Failures.WithLabelValues(operation).Inc()
	m.collector.Duration.WithLabelValues(operation).Observe(seconds)
}

func (m *RequestMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var failureRatio float64
	if m.requests > 0 {
		failureRatio = float64(m.failures) / float64(m.requests)
	}

	return map[string]interface{}{
		"requests":      m.requests,
		"failures":      m.failures,
		"failure_ratio": failureRatio,
	}
}
