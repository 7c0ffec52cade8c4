package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/social_media_app/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latencies per route template.
// Unmatched routes are reported under "unmatched" to keep label cardinality bounded.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestCount.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
