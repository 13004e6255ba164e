package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsByAuth = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_by_auth", Help: "http requests by caller authentication state"},
		[]string{"authenticated"},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	inFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_requests_in_flight", Help: "requests currently being served"},
	)

	resolutionTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cold_start_resolution_seconds",
			Help:    "entry point resolution time by function kind and strategy.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"kind", "strategy"},
	)

	resolutionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cold_start_failures_total", Help: "failed entry point resolutions by error kind"},
		[]string{"error"},
	)

	handleResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "construct_handle_resolutions_total", Help: "one-time constructor handle resolutions by strategy"},
		[]string{"strategy"},
	)

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "function_invocations_total", Help: "adapter invocations by function kind and outcome"},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsByAuth,
		totalHttpRequestsToUri,
		totalHttpRequests,
		inFlight,
		resolutionTime,
		resolutionFailures,
		handleResolutions,
		invocations,
	)
}
