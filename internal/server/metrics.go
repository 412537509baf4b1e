package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/uintcalc/internal/calc"
)

const namespace = "uintcalc"

// Metrics holds the Prometheus collectors of one server. Each Metrics owns
// its registry, so several servers (or tests) do not collide.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	operationsTotal *prometheus.CounterVec
	flagsTotal      *prometheus.CounterVec
	primeCandidates prometheus.Counter
	primesFound     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them together with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"path"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests being served.",
		}),
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Evaluated operations by width and operation.",
		}, []string{"width", "op"}),
		flagsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flags_total",
			Help:      "Status flags raised by evaluations.",
		}, []string{"flag"}),
		primeCandidates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prime_candidates_total",
			Help:      "Candidates tested by prime searches.",
		}),
		primesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "primes_found_total",
			Help:      "Primes found by width.",
		}, []string{"width"}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeRequests,
		m.operationsTotal,
		m.flagsTotal,
		m.primeCandidates,
		m.primesFound,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(path string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// RecordEvaluation counts an evaluation and the flags it raised.
func (m *Metrics) RecordEvaluation(res calc.Result) {
	m.operationsTotal.WithLabelValues(res.Width, res.Op).Inc()
	for _, name := range res.Flags.Names() {
		m.flagsTotal.WithLabelValues(name).Inc()
	}
}

// RecordPrimeSearch counts the candidates of a search and, when found is
// true, the prime found at width.
func (m *Metrics) RecordPrimeSearch(width string, candidates uint64, found bool) {
	m.primeCandidates.Add(float64(candidates))
	if found {
		m.primesFound.WithLabelValues(width).Inc()
	}
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

