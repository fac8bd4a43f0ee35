package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dsa-study/backend/internal/infrastructure"
)

// MetricsMiddleware records request count and latency per route.
// Paths listed in skip (health checks, the scrape endpoint) are not recorded.
func MetricsMiddleware(metrics *infrastructure.TelemetryMetrics, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]bool, len(skip))
	for _, path := range skip {
		skipped[path] = true
	}

	return func(c *gin.Context) {
		if skipped[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath() // Use route pattern, not actual path
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()

		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
			attribute.String("http.status_class", strconv.Itoa(status/100)+"xx"),
		)

		metrics.HTTPRequestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
		metrics.HTTPRequestCount.Add(c.Request.Context(), 1, attrs)
	}
}
