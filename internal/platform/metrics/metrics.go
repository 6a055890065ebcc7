// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Package metrics defines and registers all custom Prometheus metrics for the
// Veloura API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics use promauto and register against the default registry; mount
// [Handler] once on the router to expose them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "veloura"

// # HTTP metrics

// RequestsTotal counts finished HTTP requests.
// Labels:
//   - method: HTTP verb
//   - status: response status code
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method and status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures request latency end-to-end.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// # Domain metrics

// BehaviorEventsTotal counts storefront behavior events accepted for publishing.
// Label:
//   - kind: event kind ("product_view", "search", "cart_add")
var BehaviorEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "behavior_events_total",
		Help:      "Total number of behavior events accepted, by kind.",
	},
	[]string{"kind"},
)

// BehaviorPublishErrorsTotal counts failed deliveries to the event stream.
var BehaviorPublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "behavior_publish_errors_total",
		Help:      "Total number of behavior events that could not be published.",
	},
)

// ChatSessionsActive tracks currently connected chat widget clients.
var ChatSessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_sessions_active",
		Help:      "Number of currently connected chat widget WebSocket clients.",
	},
)

// VoucherValidationsTotal counts voucher validation attempts.
// Label:
//   - result: "accepted" or "rejected"
var VoucherValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "voucher_validations_total",
		Help:      "Total number of voucher validation attempts, by result.",
	},
	[]string{"result"},
)

// Handler returns the HTTP handler that serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// # Instrumentation middleware

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Instrument records request count and latency for every handled request.
func Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrapped := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request)

			RequestsTotal.WithLabelValues(request.Method, strconv.Itoa(wrapped.status)).Inc()
			RequestDuration.WithLabelValues(request.Method).Observe(time.Since(startTime).Seconds())
		})
	}
}
