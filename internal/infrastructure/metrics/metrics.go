// Package metrics provides Prometheus metrics for the site.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pixwing"

var (
	// ActivityFetchTotal counts activity series fetches by outcome.
	ActivityFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_fetch_total",
			Help:      "Total number of activity series fetches",
		},
		[]string{"status"},
	)

	// ActivityFetchDuration measures activity fetch duration.
	ActivityFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "activity_fetch_duration_seconds",
			Help:      "Duration of activity series fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// UpstreamRequestTotal counts GraphQL requests to the CMS and GitHub.
	UpstreamRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_request_total",
			Help:      "Total number of upstream GraphQL requests",
		},
		[]string{"upstream", "status"},
	)

	// UpstreamRequestDuration measures upstream GraphQL request duration.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream GraphQL requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	// ChartsLive tracks chart instances that have not been disposed.
	ChartsLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "charts_live",
			Help:      "Number of chart instances currently owned by widgets",
		},
	)

	// WidgetSessions tracks connected activity widget sessions.
	WidgetSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "widget_sessions",
			Help:      "Number of connected activity widget sessions",
		},
	)

	// HTTPRequestsTotal counts served HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "status_class"},
	)
)

// RecordActivityFetch records an activity fetch.
func RecordActivityFetch(status string, duration float64) {
	ActivityFetchTotal.WithLabelValues(status).Inc()
	ActivityFetchDuration.Observe(duration)
}

// RecordUpstream records an upstream GraphQL request.
func RecordUpstream(upstream, status string, duration float64) {
	UpstreamRequestTotal.WithLabelValues(upstream, status).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream).Observe(duration)
}

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(method string, statusCode int) {
	HTTPRequestsTotal.WithLabelValues(method, statusClass(statusCode)).Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
