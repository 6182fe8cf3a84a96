// Package metrics exposes the prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LeaveRequestsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_requests_created_total",
			Help: "Leave requests submitted, by leave type",
		},
		[]string{"leave_type"},
	)

	LeaveDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_decisions_total",
			Help: "Approve/reject decisions on leave requests",
		},
		[]string{"decision"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events handed to kafka, by result",
		},
		[]string{"result"},
	)

	LeaveEventsConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leave_events_consumed_total",
			Help: "Leave lifecycle events consumed, by event type and result",
		},
		[]string{"event_type", "result"},
	)
)

func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func ObserveLeaveCreated(leaveType string) {
	LeaveRequestsCreatedTotal.WithLabelValues(leaveType).Inc()
}

func ObserveLeaveDecision(decision string) {
	LeaveDecisionsTotal.WithLabelValues(decision).Inc()
}

func ObserveOutboxPublish(result string) {
	OutboxPublishedTotal.WithLabelValues(result).Inc()
}

func ObserveEventConsumed(eventType, result string) {
	LeaveEventsConsumedTotal.WithLabelValues(eventType, result).Inc()
}
