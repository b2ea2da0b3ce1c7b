package middleware

import (
	"time"

	"postapi/logger"

	"github.com/gin-gonic/gin"
)

// Logger attaches a request-scoped logger to the request context and emits
// one record per completed request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := logger.GetDefault().With("method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), log))

		c.Next()

		status := c.Writer.Status()
		keyvals := []any{
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			log.Error("Request failed", keyvals...)
		case status >= 400:
			log.Warn("Request rejected", keyvals...)
		default:
			log.Info("Request handled", keyvals...)
		}
	}
}
