package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bar_sales_recorded_total",
		Help: "Total number of bar sales recorded",
	})

	SalesReversedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bar_sales_reversed_total",
		Help: "Total number of bar sales reversed (deleted)",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bar_sales_failed_total",
		Help: "Total number of rejected bar sale attempts",
	}, []string{"reason"})

	LedgerTxLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledger_transaction_latency_seconds",
		Help:    "Latency of stock-affecting ledger transactions",
		Buckets: prometheus.DefBuckets,
	})

	LowStockWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "low_stock_warnings_total",
		Help: "Total number of sales that left a product under the low-stock threshold",
	})

	CheckinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticket_checkins_total",
		Help: "Total number of successful ticket check-ins",
	})

	CheckinsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticket_checkins_failed_total",
		Help: "Total number of rejected check-in attempts",
	}, []string{"reason"})

	DashboardCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_cache_requests_total",
		Help: "Dashboard summary reads by cache outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
