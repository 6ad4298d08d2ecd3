package middleware

import (
	"github.com/labstack/echo/v4"

	"courtflow/internal/model"
)

// principalKey is the echo context key the session gate stores the
// authenticated principal under.
const principalKey = "principal"

// Principal is the strongly typed identity attached to authenticated
// requests: exactly the projection downstream handlers need, never the full
// identity record.
type Principal struct {
	ID       uint
	Username string
	Email    string
	Role     model.Role
}

// SetPrincipal attaches the principal to the request context.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated principal, if the session gate ran.
func GetPrincipal(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
