package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "somadhan_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "somadhan_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	enquiriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "somadhan_enquiries_created_total",
			Help: "Enquiries created, labelled by whether they synced to the store.",
		},
		[]string{"synced"},
	)
)

// Middleware records request counts and latency.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// CountEnquiryCreated bumps the creation counter.
func CountEnquiryCreated(synced bool) {
	enquiriesCreated.WithLabelValues(strconv.FormatBool(synced)).Inc()
}
