package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"courtflow/internal/errors"
	"courtflow/internal/middleware"
)

// httpError translates a domain error into the transport error shape.
// Business code never sees status codes; this is the only place the mapping
// happens.
func httpError(err error) *echo.HTTPError {
	he := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// principal fetches the authenticated principal or fails with the generic
// 401. Routes behind the session gate always have one; this is the
// defense-in-depth path.
func principal(c echo.Context) (middleware.Principal, *echo.HTTPError) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return middleware.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: errors.ErrInvalidCredentials.Error(),
			Code:  "INVALID_CREDENTIALS",
		})
	}
	return p, nil
}

// pathID parses the named path parameter as an unsigned id.
func pathID(c echo.Context, name string) (uint, *echo.HTTPError) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
