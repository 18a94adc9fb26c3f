package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propdesk",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests issued, by method and final status.",
		},
		[]string{"method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "propdesk",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propdesk",
			Subsystem: "client",
			Name:      "token_refresh_total",
			Help:      "Token refresh attempts triggered by a 401, by outcome.",
		},
		[]string{"outcome"},
	)

	replaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "propdesk",
			Subsystem: "client",
			Name:      "request_replays_total",
			Help:      "Requests replayed after a successful token refresh.",
		},
	)
)

// Instrument observes every request's method, final status, and latency. The
// intermediate 401 of a refreshed request is never observed here; the stage
// sits outside the refresh stage and sees only the settled outcome.
func Instrument() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			requestsTotal.WithLabelValues(req.Method, status).Inc()
			requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			return resp, err
		})
	}
}
