package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns a private registry for the API process: HTTP
// request accounting plus the prediction-pipeline counters.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	predictionsTotal    *prometheus.CounterVec
	ruleOverridesTotal  *prometheus.CounterVec
	storageFailureTotal *prometheus.CounterVec
	upstreamFailures    *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mm",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mm",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	predictionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "pipeline",
			Name:      "predictions_total",
			Help:      "Total predictions served, by component and source (model or fallback).",
		},
		[]string{"service", "component", "source"},
	)
	ruleOverridesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "pipeline",
			Name:      "rule_overrides_total",
			Help:      "Recovery decisions overridden by the rule engine, by reason.",
		},
		[]string{"service", "reason"},
	)
	storageFailureTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "pipeline",
			Name:      "storage_failures_total",
			Help:      "Best-effort storage writes that failed.",
		},
		[]string{"service"},
	)
	upstreamFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mm",
			Subsystem: "pipeline",
			Name:      "upstream_failures_total",
			Help:      "External collaborator calls that failed, by upstream.",
		},
		[]string{"service", "upstream"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		predictionsTotal,
		ruleOverridesTotal,
		storageFailureTotal,
		upstreamFailures,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		predictionsTotal:    predictionsTotal,
		ruleOverridesTotal:  ruleOverridesTotal,
		storageFailureTotal: storageFailureTotal,
		upstreamFailures:    upstreamFailures,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordPrediction counts one served prediction. source is "model" or
// "fallback" so degraded operation stays visible.
func (m *HTTPServerMetrics) RecordPrediction(service, component, source string) {
	m.predictionsTotal.WithLabelValues(service, component, source).Inc()
}

func (m *HTTPServerMetrics) RecordRuleOverride(service, reason string) {
	m.ruleOverridesTotal.WithLabelValues(service, reason).Inc()
}

func (m *HTTPServerMetrics) RecordStorageFailure(service string) {
	m.storageFailureTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordUpstreamFailure(service, upstream string) {
	m.upstreamFailures.WithLabelValues(service, upstream).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
