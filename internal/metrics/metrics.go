// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels: method, route, status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frello",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frello",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SuggestionsTotal counts assignee suggestion attempts.
	// Labels: result (success, invalid, error)
	SuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frello",
			Subsystem: "ai",
			Name:      "suggestions_total",
			Help:      "Total number of assignee suggestion requests by outcome",
		},
		[]string{"result"},
	)

	// RemindersTotal counts task reminder emails.
	// Labels: result (sent, failed)
	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frello",
			Subsystem: "email",
			Name:      "reminders_total",
			Help:      "Total number of task reminder emails by outcome",
		},
		[]string{"result"},
	)
)

// RecordSuggestion records the outcome of an assignee suggestion.
func RecordSuggestion(result string) {
	SuggestionsTotal.WithLabelValues(result).Inc()
}

// RecordReminder records whether a reminder email went out.
func RecordReminder(sent bool) {
	if sent {
		RemindersTotal.WithLabelValues("sent").Inc()
	} else {
		RemindersTotal.WithLabelValues("failed").Inc()
	}
}
