package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

// TraceHeader carries the request trace id in both directions.
const TraceHeader = "X-Trace-ID"

// RequestLogger attaches a trace-scoped logger to the request context and,
// when logRequests is set, logs each request once it completes.
func RequestLogger(base *slog.Logger, logRequests bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		logger := base.With("trace_id", traceID)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Header(TraceHeader, traceID)

		start := time.Now()
		c.Next()

		if !logRequests {
			return
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if caller := callerID(c); caller != "" {
			attrs = append(attrs, "caller", caller)
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("Request completed", attrs...)
			return
		}
		logger.Info("Request completed", attrs...)
	}
}
