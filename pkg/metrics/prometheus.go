// Package metrics provides Prometheus metrics for the valuation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const dollarsPerMillion = 1_000_000

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	aavBuckets     []float64
	registry       prometheus.Registerer

	// Valuation
	evaluations        *prometheus.CounterVec
	evaluationErrors   *prometheus.CounterVec
	evaluationLatency  prometheus.Histogram
	finalAAV           *prometheus.HistogramVec
	factorConfidence   *prometheus.HistogramVec
	modifierAdjustment *prometheus.HistogramVec
	constraintChecks   *prometheus.CounterVec

	// Offers
	offersAccepted  prometheus.Counter
	offersDuplicate prometheus.Counter
	offersRejected  *prometheus.CounterVec
	boardSize       prometheus.Gauge

	// Queue and workers
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerActive  prometheus.Gauge
	workerLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "aav",
		subsystem:      "valuation",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		aavBuckets:     []float64{1, 2.5, 5, 10, 15, 20, 30, 40, 50, 60, 75},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_total",
		Help:      "Total number of completed valuations by position group",
	}, []string{"group"})

	m.evaluationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_errors_total",
		Help:      "Total number of failed valuations by error kind",
	}, []string{"kind"})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_latency_milliseconds",
		Help:      "Latency of a single valuation in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.finalAAV = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "final_aav_millions",
		Help:      "Final recommended AAV in millions of dollars",
		Buckets:   m.aavBuckets,
	}, []string{"group"})

	m.factorConfidence = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "factor_confidence",
		Help:      "Confidence reported by each valuation factor",
		Buckets:   []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.85, 0.9, 1},
	}, []string{"factor"})

	m.modifierAdjustment = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "modifier_adjustment_ratio",
		Help:      "Relative adjustment applied by each owner-pressure modifier",
		Buckets:   []float64{-0.15, -0.1, -0.05, -0.01, 0, 0.01, 0.05, 0.1, 0.15, 0.2},
	}, []string{"modifier"})

	m.constraintChecks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "constraint_checks_total",
		Help:      "Contract structure checks by outcome",
	}, []string{"outcome"})

	m.offersAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "offers_accepted_total",
		Help:      "Offer requests accepted for asynchronous valuation",
	})

	m.offersDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "offers_duplicate_total",
		Help:      "Offer requests dropped as duplicates",
	})

	m.offersRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "offers_rejected_total",
		Help:      "Offer requests rejected by reason",
	}, []string{"reason"})

	m.boardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_players",
		Help:      "Players with at least one recorded offer",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Offer requests waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum number of queued offer requests",
	})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Number of running valuation workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_latency_milliseconds",
		Help:      "Time a worker spends on one offer request",
		Buckets:   m.latencyBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter",
	})
}

// RecordEvaluation records a completed valuation.
func RecordEvaluation(group string, finalAAV, latencyMs float64) {
	globalManager.evaluations.WithLabelValues(group).Inc()
	globalManager.finalAAV.WithLabelValues(group).Observe(finalAAV / dollarsPerMillion)
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordEvaluationError increments the failed valuation counter.
func RecordEvaluationError(kind string) {
	globalManager.evaluationErrors.WithLabelValues(kind).Inc()
}

// RecordFactorConfidence observes the confidence of one factor result.
func RecordFactorConfidence(factor string, confidence float64) {
	globalManager.factorConfidence.WithLabelValues(factor).Observe(confidence)
}

// RecordModifierAdjustment observes the relative adjustment of one chain step.
func RecordModifierAdjustment(modifier string, adjustment float64) {
	globalManager.modifierAdjustment.WithLabelValues(modifier).Observe(adjustment)
}

// RecordConstraintCheck counts a contract structure check.
func RecordConstraintCheck(valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "violation"
	}
	globalManager.constraintChecks.WithLabelValues(outcome).Inc()
}

// RecordOfferAccepted increments the accepted offers counter.
func RecordOfferAccepted() {
	globalManager.offersAccepted.Inc()
}

// RecordOfferDuplicate increments the duplicate offers counter.
func RecordOfferDuplicate() {
	globalManager.offersDuplicate.Inc()
}

// RecordOfferRejected increments the rejected offers counter.
func RecordOfferRejected(reason string) {
	globalManager.offersRejected.WithLabelValues(reason).Inc()
}

// UpdateBoardSize sets the number of players on the offer board.
func UpdateBoardSize(count int) {
	globalManager.boardSize.Set(float64(count))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
