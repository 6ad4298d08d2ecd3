package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"courtflow/internal/model"
)

func requestWithRole(t *testing.T, role model.Role, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/guarded", handler, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role != "" {
				SetPrincipal(c, Principal{ID: 1, Username: "u", Role: role})
			}
			return next(c)
		}
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	staff := RequireRoles(model.RoleAdmin, model.RoleClerk, model.RoleJudge)

	tests := []struct {
		name         string
		role         model.Role
		expectedCode int
	}{
		{"admin allowed", model.RoleAdmin, http.StatusOK},
		{"clerk allowed", model.RoleClerk, http.StatusOK},
		{"judge allowed", model.RoleJudge, http.StatusOK},
		{"lawyer denied", model.RoleLawyer, http.StatusForbidden},
		{"public denied", model.RolePublic, http.StatusForbidden},
		{"no principal denied", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := requestWithRole(t, tt.role, staff)
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "ROLE_NOT_PERMITTED")
			}
		})
	}
}

func TestRequireRoles_DenialNamesAllowedRoles(t *testing.T) {
	rec := requestWithRole(t, model.RolePublic, RequireRoles(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
}

func TestPrincipalRoundTrip(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetPrincipal(c)
	assert.False(t, ok)

	want := Principal{ID: 12, Username: "adv", Email: "adv@example.com", Role: model.RoleLawyer}
	SetPrincipal(c, want)
	got, ok := GetPrincipal(c)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
