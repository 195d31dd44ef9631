package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_client_http_requests_total",
			Help: "Total count of API requests issued by the client.",
		},
		[]string{"method", "path", "status"},
	)
	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_client_http_request_duration_seconds",
			Help:    "Histogram of API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(apiRequests, apiDuration)
}

// observeRequest records one finished call under the path template (not the
// concrete URL) to keep label cardinality flat.
func observeRequest(method, pathTemplate string, status int, seconds float64) {
	labels := []string{method, pathTemplate, strconv.Itoa(status)}
	apiRequests.WithLabelValues(labels...).Inc()
	apiDuration.WithLabelValues(labels...).Observe(seconds)
}
