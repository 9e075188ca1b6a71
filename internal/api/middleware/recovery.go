package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/auction-browser/internal/metrics"
)

const internalErrorDetail = "Internal server error"

// Recovery turns a handler panic into a 500 with the backend's
// {"detail": ...} body. The panic is logged on the request-scoped logger
// with its route and counted in panics_recovered_total.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}

				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				metrics.MockHTTPPanicsTotal.WithLabelValues(route).Inc()

				Logger(c, log).Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"route", route,
					"stack", string(debug.Stack()),
				)

				// Headers already went out; the client sees a truncated body.
				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]string{
					"detail": internalErrorDetail,
				})
			}()
			return next(c)
		}
	}
}
