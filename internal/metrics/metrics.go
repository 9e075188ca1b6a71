// Package metrics defines Prometheus metrics for the auction browser.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auction_browser"

// API client metrics. The endpoint label is the route template
// ("/auctions/{id}"), never the concrete path.
var (
	ClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Duration of backend API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	ClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "Total number of backend API requests.",
	}, []string{"method", "endpoint", "status"})
)

// View metrics.
var (
	ViewLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_loads_total",
		Help:      "Total number of view loads by screen and outcome.",
	}, []string{"view", "outcome"})

	ViewStaleResultsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_stale_results_dropped_total",
		Help:      "Load results discarded because the view was closed or superseded.",
	}, []string{"view"})
)

// Data quality metrics.
var (
	ReasonFuzzyMatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reason_fuzzy_matches_total",
		Help:      "Auctions matched as negotiated sales only through the substring fallback.",
	})
)

// Session metrics.
var (
	SessionChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_changes_total",
		Help:      "Total number of session token changes.",
	}, []string{"action"})
)

// Mock backend metrics. The route label is the echo route ("/api/auctions/:id").
var (
	MockHTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mock_backend",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of requests served by the mock backend in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	MockHTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mock_backend",
		Name:      "http_requests_total",
		Help:      "Total number of requests served by the mock backend.",
	}, []string{"method", "route", "status"})

	MockHTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mock_backend",
		Name:      "panics_recovered_total",
		Help:      "Handler panics recovered by the mock backend, by route.",
	}, []string{"route"})
)
