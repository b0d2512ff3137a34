package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// Check pings one backing service.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
}

func NewHandler(checks map[string]Check) *Handler { return &Handler{checks: checks} }

type healthResp struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports 503 when any backing service fails its ping.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	out := healthResp{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	code := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			out.Checks[name] = err.Error()
			out.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		out.Checks[name] = "ok"
	}
	out.Time = time.Now().UTC().Format(time.RFC3339Nano)
	return c.JSON(code, out)
}
