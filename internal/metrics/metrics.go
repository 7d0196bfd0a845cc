package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "estate"

var (
	// Billing
	LeasesCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leases_created_total",
		Help:      "Total number of leases created",
	})
	InvoicesGeneratedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_generated_total",
		Help:      "Total number of invoices written by schedule generation",
	})
	PaymentsRecordedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded",
	})
	PaymentRejectionsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_rejections_total",
			Help:      "Payments refused, by reason",
		},
		[]string{"reason"},
	)
	OverdueInvoicesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "overdue_invoices",
		Help:      "Pending invoices whose due date has passed, as of the last report run",
	})

	// HTTP
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)
	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors",
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, path string, status int, started time.Time) {
	code := strconv.Itoa(status)
	APIRequestCounter.With(prometheus.Labels{"method": method, "path": path}).Inc()
	RequestDurationHistogram.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"status": code,
	}).Observe(time.Since(started).Seconds())
	if status >= 400 {
		APIErrorCounter.With(prometheus.Labels{"method": method, "path": path, "status": code}).Inc()
	}
}
