// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// the background jobs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics instruments the HTTP request path.
type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewServerMetrics registers and returns the HTTP metrics.
func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orders",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orders",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	prometheus.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// JobMetrics instruments the scheduled order advancement job.
type JobMetrics struct {
	Runs           *prometheus.CounterVec
	AdvancedOrders prometheus.Counter
	DurationMS     prometheus.Histogram
}

// NewJobMetrics registers and returns the job metrics.
func NewJobMetrics() *JobMetrics {
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orders",
		Name:      "job_runs_total",
		Help:      "Total number of job runs by outcome.",
	}, []string{"job", "outcome"})
	advanced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "orders",
		Name:      "job_advanced_orders_total",
		Help:      "Total number of orders moved by the advancement sweep.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "orders",
		Name:      "job_run_duration_ms",
		Help:      "Job run duration in milliseconds.",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 15000, 60000},
	})

	prometheus.MustRegister(runs, advanced, duration)
	return &JobMetrics{Runs: runs, AdvancedOrders: advanced, DurationMS: duration}
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
