package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"courtflow/internal/auth"
	"courtflow/internal/errors"
	"courtflow/internal/repository"
)

// AccessTokenCookie is the HTTP-only cookie carrying the access token. The
// cookie takes precedence over the Authorization header.
const AccessTokenCookie = "access_token"

// claimsKey is where the verified access claims land before identity load.
const claimsKey = "access_claims"

func unauthorized() *echo.HTTPError {
	// One generic body for every authentication failure; the sub-cause is
	// never revealed to the client.
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrInvalidCredentials.Error(),
		Code:  "INVALID_CREDENTIALS",
	})
}

// VerifyToken returns the middleware that extracts the bearer token (cookie
// first, then Authorization header), verifies it against the token service
// and stores the claims. It fails closed with a generic 401 and mutates no
// state on any failure path.
func VerifyToken(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsKey,
		TokenLookup: "cookie:" + AccessTokenCookie + ",header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized()
		},
	})
}

// LoadIdentity resolves the verified claims to a stored identity and attaches
// a typed Principal to the request. The load uses a projection that excludes
// the password hash and refresh token hash and performs no writes.
func LoadIdentity(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsKey).(*auth.AccessClaims)
			if !ok {
				return unauthorized()
			}
			user, err := users.FindProjectionByID(c.Request().Context(), claims.UserID)
			if err != nil {
				// Unknown identity reads the same as a bad token.
				return unauthorized()
			}
			SetPrincipal(c, Principal{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Role:     user.Role,
			})
			return next(c)
		}
	}
}

// SessionGate combines token verification and identity resolution. Every
// protected route group mounts this pair.
func SessionGate(jwtService *auth.JWTService, users repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{VerifyToken(jwtService), LoadIdentity(users)}
}
