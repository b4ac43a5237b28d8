package common

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context keys set by handlers and read by the metrics middleware
const (
	RequestIDKey     = "request_id"
	RowsProcessedKey = "rows_processed"
)

// MetricsMiddleware tags each request with an ID, logs it and stores an
// api_metrics row. The row is written asynchronously.
func MetricsMiddleware(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Generate request ID for tracing
		requestID := uuid.New().String()
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		duration := time.Since(startTime)

		// Get rows processed (if set by handler)
		rowsProcessed := c.GetInt(RowsProcessedKey)

		errors := ""
		if len(c.Errors) > 0 {
			errors = c.Errors.String()
		}

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", endpoint),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", duration),
			zap.Int("rows", rowsProcessed),
		)

		if db == nil {
			return
		}

		metric := ApiMetric{
			RequestID:     requestID,
			Endpoint:      endpoint,
			Method:        c.Request.Method,
			StatusCode:    c.Writer.Status(),
			DurationMs:    int(duration.Milliseconds()),
			RowsProcessed: rowsProcessed,
			Errors:        errors,
			Timestamp:     startTime,
		}

		go func() {
			if err := db.Create(&metric).Error; err != nil {
				log.Warn("save api metric", zap.Error(err))
			}
		}()
	}
}
