package middleware

import (
	"time"

	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogging logs every request once it has been served. Bodies are not
// logged since they carry user content.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		logger.Debug(ctx, "incoming request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"content_length", c.Request.ContentLength,
		)

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Warn(ctx, "request failed", args...)
		default:
			logger.Info(ctx, "request served", args...)
		}
	}
}
