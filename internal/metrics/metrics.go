package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamber_connect",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled, by route and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chamber_connect",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// QRScansRecorded counts accepted scan events by source channel.
	QRScansRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamber_connect",
		Name:      "qr_scans_recorded_total",
		Help:      "QR scan events recorded, by source.",
	}, []string{"source"})

	// CheckoutSessions counts checkout attempts by outcome.
	CheckoutSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamber_connect",
		Name:      "checkout_sessions_total",
		Help:      "Hosted checkout sessions created, by outcome.",
	}, []string{"outcome"})

	// EmailsSent counts outbound emails by kind and outcome.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chamber_connect",
		Name:      "emails_sent_total",
		Help:      "Outbound emails, by kind and outcome.",
	}, []string{"kind", "outcome"})
)
