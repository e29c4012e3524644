package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authsvc "github.com/malekbenamor02/portfolio/internal/auth"
	"github.com/malekbenamor02/portfolio/internal/cookies"
	"github.com/malekbenamor02/portfolio/internal/models"
	"github.com/malekbenamor02/portfolio/internal/ratelimit"
	"github.com/malekbenamor02/portfolio/internal/store"
	"github.com/malekbenamor02/portfolio/internal/tokens"
)

var testJWTSecret = []byte("test_jwt_secret")

func newTestGuard(t *testing.T) *Guard {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	require.NoError(t, db.Create(&models.User{
		ID:           "user-1",
		Email:        "a@b.com",
		PasswordHash: "digest",
		Role:         "admin",
		IsActive:     true,
	}).Error)

	service := authsvc.NewService(store.New(db), ratelimit.NewMemoryLimiter(), testJWTSecret, []byte("test_refresh_secret"))
	return &Guard{Service: service, Cookies: cookies.New(false)}
}

func runGuard(t *testing.T, g *Guard, reqCookies ...*http.Cookie) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, cookie := range reqCookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, g.RequireAdmin(next)(c)
}

func TestRequireAdminAllowsValidToken(t *testing.T) {
	g := newTestGuard(t)

	token, err := tokens.SignAccess("user-1", "a@b.com", "admin", testJWTSecret, time.Now())
	require.NoError(t, err)

	c, err := runGuard(t, g, &http.Cookie{Name: cookies.AccessTokenName, Value: token})
	require.NoError(t, err)

	user, ok := c.Get("user").(*models.User)
	require.True(t, ok)
	require.Equal(t, "user-1", user.ID)

	claims, ok := c.Get("claims").(*tokens.AccessClaims)
	require.True(t, ok)
	require.Equal(t, "admin", claims.Role)
}

func TestRequireAdminRejectsMissingCookie(t *testing.T) {
	g := newTestGuard(t)

	_, err := runGuard(t, g)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	g := newTestGuard(t)

	issued := time.Now().Add(-tokens.AccessTTL - time.Minute)
	token, err := tokens.SignAccess("user-1", "a@b.com", "admin", testJWTSecret, issued)
	require.NoError(t, err)

	_, err = runGuard(t, g, &http.Cookie{Name: cookies.AccessTokenName, Value: token})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdminRejectsDeactivatedUser(t *testing.T) {
	g := newTestGuard(t)
	require.NoError(t, g.Service.Store.DB.
		Model(&models.User{ID: "user-1"}).Update("is_active", false).Error)

	token, err := tokens.SignAccess("user-1", "a@b.com", "admin", testJWTSecret, time.Now())
	require.NoError(t, err)

	_, err = runGuard(t, g, &http.Cookie{Name: cookies.AccessTokenName, Value: token})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
