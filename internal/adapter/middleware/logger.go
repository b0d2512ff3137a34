package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const loggerKey = "logger"

// LoggerFrom returns the request-scoped logger, or fallback when RequestID did not run.
func LoggerFrom(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// AccessLog writes one line per request; level follows the status class.
func AccessLog(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.String("uri", req.RequestURI),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			if a := ActorFrom(c); a.ID != "" {
				fields = append(fields, zap.String("actor_id", a.ID), zap.String("actor_role", string(a.Role)))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			lvl := zapcore.InfoLevel
			switch {
			case status >= 500:
				lvl = zapcore.ErrorLevel
			case status >= 400:
				lvl = zapcore.WarnLevel
			}
			LoggerFrom(c, base).Check(lvl, "http request").Write(fields...)
			return nil
		}
	}
}
