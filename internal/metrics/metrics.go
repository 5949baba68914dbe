package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "Requests handled by the gateway, labeled by route template.",
	}, []string{"method", "route", "status"})

	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_upstream_request_duration_seconds",
		Help:    "Latency of calls to the laundromat backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	upstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_upstream_errors_total",
		Help: "Backend calls that failed at the transport level.",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, upstreamDuration, upstreamErrors)
}

// Middleware records per-route request counts. The route template is used as
// the label (not the raw path) to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not run yet, so the response still
			// carries the pre-error status.
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}

// ObserveUpstream records the latency of one backend call.
func ObserveUpstream(method string, d time.Duration) {
	upstreamDuration.WithLabelValues(method).Observe(d.Seconds())
}

// CountUpstreamError records a backend call that never produced a response.
func CountUpstreamError() {
	upstreamErrors.Inc()
}
