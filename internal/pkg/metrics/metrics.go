// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServiceMetrics bundles the counters and histograms reported by the parcel
// orchestration service.
type ServiceMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	ParcelEvents  *prometheus.CounterVec
	JobsCreated   *prometheus.CounterVec
	SweepDuration prometheus.Histogram
}

// NewServiceMetrics registers and returns the service metric set.
func NewServiceMetrics(service string) *ServiceMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcelflow",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "parcelflow",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	parcelEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcelflow",
		Subsystem: service,
		Name:      "parcel_events_total",
		Help:      "Total number of parcel lifecycle events appended.",
	}, []string{"event"})
	jobsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parcelflow",
		Subsystem: service,
		Name:      "jobs_created_total",
		Help:      "Total number of vehicle jobs created by the batcher.",
	}, []string{"kind"})
	sweepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "parcelflow",
		Subsystem: service,
		Name:      "progress_sweep_duration_ms",
		Help:      "Duration of one progress generator sweep in milliseconds.",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 15000},
	})

	prometheus.MustRegister(requests, latency, parcelEvents, jobsCreated, sweepDuration)
	return &ServiceMetrics{
		Requests:      requests,
		LatencyMS:     latency,
		ParcelEvents:  parcelEvents,
		JobsCreated:   jobsCreated,
		SweepDuration: sweepDuration,
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
