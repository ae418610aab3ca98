package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/pkg/logger"
)

// RequestLogger logs incoming requests and their responses. When the route
// carries a document id parameter, the id is seeded into the request context
// so every log line produced while handling the request names the document.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		ctx := c.Request.Context()
		if documentID := c.Param("id"); documentID != "" {
			ctx = context.WithValue(ctx, logger.DocumentIDKey, documentID)
			c.Request = c.Request.WithContext(ctx)
		}

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code
		status := c.Writer.Status()

		// Build log attributes
		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if query != "" {
			attrs = append(attrs, "query", query)
		}

		// Log with appropriate level based on status code
		switch {
		case status >= 500:
			logger.Error(ctx, "request completed", attrs...)
		case status >= 400:
			logger.Warn(ctx, "request completed", attrs...)
		default:
			logger.Info(ctx, "request completed", attrs...)
		}
	}
}
