package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/telemetry"
	"stackadvisor-backend/internal/shared/util"
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
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		runID, _ := c.Get("recommendationRunId")

		// Log a stable one-way key, not the raw identity.
		userKey := ""
		if userID := UserIDFromContext(c); userID != "" {
			userKey = util.HashUserKey(userID)
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_key":    userKey,
			"run_id":      runID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
