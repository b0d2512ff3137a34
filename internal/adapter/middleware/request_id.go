package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestID echoes X-Request-Id back to the caller, minting one when absent, and
// stores a request-scoped logger for handlers.
func RequestID(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.Set(requestIDKey, rid)
			c.Set(loggerKey, base.With(zap.String("request_id", rid)))
			return next(c)
		}
	}
}

func RequestIDFrom(c echo.Context) string {
	s, _ := c.Get(requestIDKey).(string)
	return s
}
