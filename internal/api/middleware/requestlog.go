// Package middleware provides the Echo middleware used by the mock backend.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

// RequestLog returns Echo middleware that tags each request with an ID
// (the client's X-Request-ID when present) and logs it on completion.
// Handlers reach the request-scoped logger through Logger.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			reqLog := log.With("request_id", reqID)

			c.Set(requestIDKey, reqID)
			c.Set(loggerKey, reqLog)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case c.Path() == "/healthz":
				level = slog.LevelDebug
			}

			reqLog.Log(c.Request().Context(), level, "request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"query", c.Request().URL.RawQuery,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			return nil
		}
	}
}

// RequestID returns the ID assigned by RequestLog, or "".
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// Logger returns the request-scoped logger set by RequestLog, or fallback
// when the middleware did not run.
func Logger(c echo.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := c.Get(loggerKey).(*slog.Logger); ok {
		return l
	}
	return fallback
}
