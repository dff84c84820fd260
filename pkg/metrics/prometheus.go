package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the docket service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Docket
	casesScored    prometheus.Counter
	casesRejected  *prometheus.CounterVec
	casesByStatus  *prometheus.GaugeVec
	recordsTotal   prometheus.Gauge
	updateLatency  prometheus.Histogram
	queryLatency   prometheus.Histogram
	sourceAppends  prometheus.Counter
	sourceFailures *prometheus.CounterVec

	// Allocation
	allocationLatency prometheus.Histogram
	unassignedCases   prometheus.Gauge
	judgeLoad         *prometheus.GaugeVec

	// Simulation
	activeCases   prometheus.Gauge
	disposedTotal prometheus.Gauge
	hearingsHeld  prometheus.Counter
	adjournments  prometheus.Counter
	simulatedDays prometheus.Counter
	sessionResets prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "docket",
		subsystem:        "court",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	})
}

// initializeMetrics creates all the Prometheus metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	m.casesScored = m.counter("cases_scored_total", "Total number of cases scored and filed")
	m.casesRejected = m.counterVec("cases_rejected_total", "Total number of case records rejected, by reason", "reason")
	m.casesByStatus = m.gaugeVec("cases", "Number of cases on the docket by status", "status")
	m.recordsTotal = m.gauge("docket_records_total", "Total number of cases in the ordered store")
	m.updateLatency = m.histogram("docket_update_latency_milliseconds", "Latency of docket store writes", m.histogramBuckets)
	m.queryLatency = m.histogram("docket_query_latency_milliseconds", "Latency of docket store reads", m.histogramBuckets)
	m.sourceAppends = m.counter("source_appends_total", "Cases appended to the case source")
	m.sourceFailures = m.counterVec("source_failures_total", "Case source failures by operation", "operation")

	m.allocationLatency = m.histogram("allocation_latency_milliseconds", "Latency of one allocation round", m.histogramBuckets)
	m.unassignedCases = m.gauge("unassigned_cases", "Active cases with no judge available")
	m.judgeLoad = m.gaugeVec("judge_load", "Cases currently assigned to each judge", "judge", "level")

	m.activeCases = m.gauge("active_cases", "Cases still active in the simulation session")
	m.disposedTotal = m.gauge("disposed_cases", "Cases disposed since the session was last reset")
	m.hearingsHeld = m.counter("hearings_held_total", "Hearings completed across all simulated days")
	m.adjournments = m.counter("adjournments_total", "Hearings adjourned across all simulated days")
	m.simulatedDays = m.counter("simulated_days_total", "Number of simulated court days")
	m.sessionResets = m.counter("session_resets_total", "Number of simulation session resets")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Docket Metrics Functions.

// RecordCaseScored increments the scored cases counter.
func RecordCaseScored() {
	globalManager.casesScored.Inc()
}

// RecordCaseRejected increments the rejected cases counter for reason.
func RecordCaseRejected(reason string) {
	globalManager.casesRejected.WithLabelValues(reason).Inc()
}

// UpdateCasesByStatus sets the number of cases with the given status.
func UpdateCasesByStatus(status string, count int) {
	globalManager.casesByStatus.WithLabelValues(status).Set(float64(count))
}

// UpdateRepositoryRecordsTotal sets the number of cases in the ordered store.
func UpdateRepositoryRecordsTotal(count int) {
	globalManager.recordsTotal.Set(float64(count))
}

// RecordRepositoryUpdateLatency records store write latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.updateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records store read latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// RecordSourceAppend increments the case source append counter.
func RecordSourceAppend() {
	globalManager.sourceAppends.Inc()
}

// RecordSourceFailure increments the case source failure counter.
func RecordSourceFailure(operation string) {
	globalManager.sourceFailures.WithLabelValues(operation).Inc()
}

// Allocation Metrics Functions.

// RecordAllocationLatency records the latency of one allocation round.
func RecordAllocationLatency(latencyMs float64) {
	globalManager.allocationLatency.Observe(latencyMs)
}

// UpdateUnassignedCases sets the number of cases with no judge available.
func UpdateUnassignedCases(count int) {
	globalManager.unassignedCases.Set(float64(count))
}

// UpdateJudgeLoad sets the current load of a judge.
func UpdateJudgeLoad(judge, level string, load int) {
	globalManager.judgeLoad.WithLabelValues(judge, level).Set(float64(load))
}

// Simulation Metrics Functions.

// UpdateActiveCases sets the number of active cases in the session.
func UpdateActiveCases(count int) {
	globalManager.activeCases.Set(float64(count))
}

// UpdateDisposedTotal sets the session's cumulative disposed count.
func UpdateDisposedTotal(count int) {
	globalManager.disposedTotal.Set(float64(count))
}

// RecordSimulatedDay records one simulated day and its hearing outcomes.
func RecordSimulatedDay(held, adjourned int) {
	globalManager.simulatedDays.Inc()
	globalManager.hearingsHeld.Add(float64(held))
	globalManager.adjournments.Add(float64(adjourned))
}

// RecordSessionReset increments the session reset counter.
func RecordSessionReset() {
	globalManager.sessionResets.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
