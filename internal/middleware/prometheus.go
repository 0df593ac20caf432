package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/knowbaseai/knowbase/internal/metrics"
)

// PrometheusMiddleware observes request duration and count per method,
// route, and status. The route pattern is used instead of the raw URL so
// document IDs do not blow up label cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}

		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(labels...).Inc()
	}
}
