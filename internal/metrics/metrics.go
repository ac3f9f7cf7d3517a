package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "property_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AlertOutcomes counts per-entity sweep outcomes (sent, already_sent, paid, missing_recipient, failed).
	AlertOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_alert_outcomes_total",
			Help: "Alert sweep outcomes by category and result",
		},
		[]string{"category", "outcome"},
	)

	BookingViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_booking_violations_total",
			Help: "Rejected rental writes by violation kind",
		},
		[]string{"kind"},
	)
)
