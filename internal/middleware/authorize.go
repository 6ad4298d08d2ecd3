package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courtflow/internal/errors"
	"courtflow/internal/model"
)

// RequireRoles allows the request through only when the authenticated
// principal's role is in the given set. Role sets are static per route, so
// the check is a constant-time membership test.
//
// A missing principal means the session gate did not run or failed silently
// upstream; that path is modeled anyway and denies with 401.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
		names = append(names, string(r))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := GetPrincipal(c)
			if !ok {
				return unauthorized()
			}
			if _, ok := allowed[p.Role]; !ok {
				authzErr := errors.NewAuthorizationError(names...)
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: authzErr.Error(),
					Code:  "ROLE_NOT_PERMITTED",
				})
			}
			return next(c)
		}
	}
}
