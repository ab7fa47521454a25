package middleware

import (
	"log/slog"
	"time"

	"user_register/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request and records request metrics.
func RequestLogger(logger *slog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "static"
		}
		status := c.Writer.Status()
		if m != nil {
			m.RecordRequest(c.Request.Method, route, status, duration)
		}

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"request_id", GetRequestID(c),
		)
	}
}
