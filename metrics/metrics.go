package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnabot",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dnabot",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnabot",
		Name:      "commands_total",
		Help:      "Total commands handled by intent and response kind.",
	}, []string{"intent", "kind"})

	CommandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dnabot",
		Name:      "command_duration_seconds",
		Help:      "Command handling latency in seconds, including controller calls.",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"intent"})

	WebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnabot",
		Name:      "webhooks_total",
		Help:      "Total inbound webhooks by validation result.",
	}, []string{"result"})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dnabot",
		Name:      "deliveries_total",
		Help:      "Total replies delivered to Webex by kind and outcome.",
	}, []string{"kind", "outcome"})

	ArtifactsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dnabot",
		Name:      "artifacts_removed_total",
		Help:      "Total generated chart and inventory files removed by the janitor.",
	})
)

// Webhook validation results
const (
	WebhookAccepted     = "accepted"
	WebhookBadSignature = "bad_signature"
	WebhookMalformed    = "malformed"
	WebhookSelf         = "self"
	WebhookLookupFailed = "lookup_failed"
	WebhookUnauthorized = "unauthorized"
	WebhookDuplicate    = "duplicate"
)

// ObserveCommand records a handled command
func ObserveCommand(intent, kind string, started time.Time) {
	CommandsTotal.WithLabelValues(intent, kind).Inc()
	CommandDuration.WithLabelValues(intent).Observe(time.Since(started).Seconds())
}

// Handler returns an http.Handler that serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware wraps an http.Handler to record request metrics.
// Routes are labelled by their mux template to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start).Seconds()

		route := routeLabel(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}
