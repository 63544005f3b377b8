package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evoa_http_requests_total", Help: "HTTP requests by route and status code"},
		[]string{"route", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "evoa_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"route"},
	)
	Analyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evoa_analysis_total", Help: "Analysis proxy calls by mode and outcome"},
		[]string{"mode", "outcome"},
	)
	UploadURLs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evoa_upload_url_total", Help: "Direct upload URL requests by outcome"},
		[]string{"outcome"},
	)
)

var once sync.Once

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, Analyses, UploadURLs)
	})
}
