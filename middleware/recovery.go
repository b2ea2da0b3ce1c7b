package middleware

import (
	"net/http"

	"postapi/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a panicking handler into a 500 response so one request
// can never take the server down.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("Recovered from panic",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
