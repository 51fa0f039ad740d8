package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/williandsn10/asbarberpro/internal/auth"
	"github.com/williandsn10/asbarberpro/internal/logger"
)

// RequestLoggingMiddleware logs one line per request. Server errors log at
// error level and client errors at warn.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}
		if id, ok := auth.GetUserID(c); ok {
			kv = append(kv, "user_id", id.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP request", kv...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP request", kv...)
		default:
			logger.Info("HTTP request", kv...)
		}
	}
}
