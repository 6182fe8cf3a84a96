package middleware

import (
	"time"

	"github.com/cuti-management/backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request count and latency per route template.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
