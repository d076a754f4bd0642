package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seadmustafa/FXAPI/internal/platform/metrics"
)

// Metrics records request duration per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDurationSeconds.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
