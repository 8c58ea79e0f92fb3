package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	requestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// PromotionRedemptionsTotal counts successful redeems. Handlers increment it.
	PromotionRedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "promotion_redemptions_total",
			Help: "Total number of successful promotion redemptions",
		},
	)
)

// Metrics records request count and latency per route pattern. Register it
// before RequestLogger so errors are rendered by the time the status is read.
func Metrics(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()

	// Route patterns keep path ids out of the label set
	endpoint := c.Route().Path
	if endpoint == "" {
		endpoint = "unmatched"
	}
	status := strconv.Itoa(c.Response().StatusCode())

	requestDuration.WithLabelValues(c.Method(), endpoint, status).Observe(time.Since(start).Seconds())
	requestCount.WithLabelValues(c.Method(), endpoint, status).Inc()

	return err
}
