package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "requestID"
	// RequestIDHeader carries the request ID in requests and responses
	RequestIDHeader = "X-Request-ID"

	requestLoggerKey = "requestLogger"
)

// LoggingMiddleware tags every request with an ID and writes one access entry
// once the handler chain returns. Requests to skipPaths still get an ID but are
// not logged, so liveness checks stay out of the log.
func LoggingMiddleware(logger *zap.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.With(zap.String("request_id", requestID))
		c.Set(requestLoggerKey, reqLogger)

		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level, msg := accessLevel(status)
		entry := reqLogger.Check(level, msg)
		if entry == nil {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_size", c.Writer.Size()),
			zap.String("client_ip", c.ClientIP()),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields = append(fields, zap.String("query", query))
		}
		// Handlers attach storage and import failures with c.Error
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		entry.Write(fields...)
	}
}

func accessLevel(status int) (zapcore.Level, string) {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel, "Server error"
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel, "Client error"
	default:
		return zapcore.InfoLevel, "Request completed"
	}
}

// GetRequestID returns the ID assigned by LoggingMiddleware, or "" outside it
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger returns the logger scoped to the current request, falling back
// to fallback when LoggingMiddleware has not run
func RequestLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := c.Get(requestLoggerKey); ok {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}

// RecoveryMiddleware turns a handler panic into a 500 that still carries the
// request ID, so a report from the lessons page can be matched to the stack.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			requestID := GetRequestID(c)
			RequestLogger(c, logger).Error("Panic recovered",
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.Any("panic", recovered),
				zap.Stack("stack"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}()
		c.Next()
	}
}
