package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics covers the background process: sensor-reading persistence and
// the telemetry poller loop.
type WorkerMetrics struct {
	registry *prometheus.Registry

	readingsTotal    *prometheus.CounterVec
	readingDuration  *prometheus.HistogramVec
	readingsInFlight prometheus.Gauge
	pollerSyncsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	readingsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "worker",
			Name:      "sensor_readings_total",
			Help:      "Total persisted sensor readings by status.",
		},
		[]string{"service", "status"},
	)
	readingDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mm",
			Subsystem: "worker",
			Name:      "sensor_reading_duration_seconds",
			Help:      "Sensor reading persistence duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	readingsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mm",
			Subsystem: "worker",
			Name:      "sensor_readings_in_flight",
			Help:      "Number of sensor readings currently being persisted.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pollerSyncsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "worker",
			Name:      "poller_syncs_total",
			Help:      "Telemetry poller cycles by outcome (published, duplicate, error).",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(readingsTotal, readingDuration, readingsInFlight, pollerSyncsTotal)

	return &WorkerMetrics{
		registry:         registry,
		readingsTotal:    readingsTotal,
		readingDuration:  readingDuration,
		readingsInFlight: readingsInFlight,
		pollerSyncsTotal: pollerSyncsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartReading() {
	m.readingsInFlight.Inc()
}

func (m *WorkerMetrics) FinishReading(service string, duration time.Duration, err error) {
	m.readingsInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.readingsTotal.WithLabelValues(service, status).Inc()
	m.readingDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) RecordPollerSync(service, outcome string) {
	m.pollerSyncsTotal.WithLabelValues(service, outcome).Inc()
}
