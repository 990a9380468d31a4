package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	transport "finedu/backend/internal/http"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newAuthedEcho(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	authService, err := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewSettingsRepository(db),
		"test-secret",
	)
	require.NoError(t, err)

	resp, err := authService.Register(context.Background(), "mw_user", "mw@example.com", "pass123", "", service.Profile{})
	require.NoError(t, err)

	e := echo.New()
	protected := e.Group("/api", transport.JWTAuthMiddleware(authService))
	protected.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"userId": c.Get(transport.ContextUserID),
			"role":   c.Get(transport.ContextUserRole),
		})
	})

	admin := protected.Group("", transport.RequireRole("admin", "teacher"))
	admin.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return e, resp.Token
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	e, _ := newAuthedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing authentication")
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	e, _ := newAuthedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthMiddleware_BearerHeader(t *testing.T) {
	e, token := newAuthedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "student")
}

func TestJWTAuthMiddleware_Cookie(t *testing.T) {
	e, token := newAuthedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.AddCookie(&http.Cookie{Name: transport.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_ForbidsStudents(t *testing.T) {
	e, token := newAuthedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "insufficient permissions")
}
