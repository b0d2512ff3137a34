package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"insurance-brokerage/internal/domain/policy"
)

const (
	HeaderActorID   = "Ax-Actor-Id"
	HeaderActorRole = "Ax-Actor-Role"

	actorKey = "actor"
)

// Actor reads the caller identity forwarded by the gateway. Requests without an
// identity pass through with a zero Actor; the usecases decide whether one is needed.
func Actor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header
		id := strings.TrimSpace(h.Get(HeaderActorID))
		role := policy.Role(strings.ToLower(strings.TrimSpace(h.Get(HeaderActorRole))))
		if id == "" && role == "" {
			return next(c)
		}
		if !reHex32.MatchString(id) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderActorID})
		}
		if !role.Valid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderActorRole})
		}
		c.Set(actorKey, policy.Actor{ID: id, Role: role})
		return next(c)
	}
}

// ActorFrom returns the identity stored by Actor, or the zero value.
func ActorFrom(c echo.Context) policy.Actor {
	a, _ := c.Get(actorKey).(policy.Actor)
	return a
}
