package middleware

import (
	"log/slog"

	deliverycontext "lunchorder/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestLoggerMiddleware attaches a request-scoped logger carrying the
// request ID to the request context.
type RequestLoggerMiddleware struct {
	logger *slog.Logger
}

// NewRequestLoggerMiddleware creates the request logger middleware.
func NewRequestLoggerMiddleware(logger *slog.Logger) *RequestLoggerMiddleware {
	return &RequestLoggerMiddleware{logger: logger}
}

// Handle propagates or generates the X-Request-Id header and stores a
// logger annotated with it in the request context.
func (m *RequestLoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}
		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		requestLogger := m.logger.With(slog.String("request_id", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, requestLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
