// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_requests_total",
			Help: "Total number of requests handled by the proxy",
		},
		[]string{"route", "status"},
	)

	ProxyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "proxy_request_duration_seconds",
			Help: "Duration of request handling in seconds",
		},
		[]string{"route"},
	)

	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_upstream_calls_total",
			Help: "Total number of upstream provider calls",
		},
		[]string{"provider", "status"},
	)

	UpstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "proxy_upstream_call_duration_seconds",
			Help: "Duration of upstream provider calls in seconds",
		},
		[]string{"provider"},
	)
)
