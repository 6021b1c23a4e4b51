package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			handler := ctx.Path()
			if handler == "" {
				handler = ctx.Request().URL.Path
			}

			m.Requests.WithLabelValues(handler, strconv.Itoa(ctx.Response().Status)).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))

			return err
		}
	}
}
