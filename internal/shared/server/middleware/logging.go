package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-coach/internal/shared/server/respond"
	"career-coach/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := respond.LogFields(c, map[string]any{
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"profile_id":  "",
		})
		telemetry.Info("request.complete", fields)
	}
}
