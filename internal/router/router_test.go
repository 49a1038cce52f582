package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"storefront/internal/auth"
	"storefront/internal/model"
)

func newTestServer(tokenService *auth.TokenService) *echo.Echo {
	e := echo.New()
	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	secured := e.Group("", BearerToken(tokenService))
	secured.GET("/any", ok)
	secured.GET("/admin", ok, RequireRoles(model.RoleAdmin))
	return e
}

func issueToken(t *testing.T, svc *auth.TokenService, roles ...model.RoleName) string {
	t.Helper()
	user := &model.User{ID: 1, Username: "alice"}
	for _, r := range roles {
		user.Roles = append(user.Roles, model.Role{Name: r})
	}
	token, err := svc.Issue(user)
	assert.NoError(t, err)
	return token
}

func TestBearerTokenAndRequireRoles(t *testing.T) {
	tokenService := auth.NewTokenService("test-secret", time.Hour)
	expiredService := auth.NewTokenService("test-secret", -time.Minute)
	e := newTestServer(tokenService)

	tests := []struct {
		name     string
		path     string
		header   string
		expected int
	}{
		{"missing token", "/any", "", http.StatusUnauthorized},
		{"garbage token", "/any", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "/any", "Bearer " + issueToken(t, expiredService, model.RoleAdmin), http.StatusUnauthorized},
		{"user token on user route", "/any", "Bearer " + issueToken(t, tokenService, model.RoleUser), http.StatusOK},
		{"user token on admin route", "/admin", "Bearer " + issueToken(t, tokenService, model.RoleUser), http.StatusForbidden},
		{"admin token on admin route", "/admin", "Bearer " + issueToken(t, tokenService, model.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}
