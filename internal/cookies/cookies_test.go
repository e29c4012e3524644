package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSetAccess(t *testing.T) {
	c, rec := newContext(t)
	New(true).SetAccess(c, "token-value")

	cookie := findCookie(t, rec, AccessTokenName)
	require.Equal(t, "token-value", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, 15*60, cookie.MaxAge)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetRefresh(t *testing.T) {
	c, rec := newContext(t)
	New(true).SetRefresh(c, "refresh-value")

	cookie := findCookie(t, rec, RefreshTokenName)
	require.Equal(t, "refresh-value", cookie.Value)
	require.Equal(t, 7*24*60*60, cookie.MaxAge)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestSecureFlagOffInDevelopment(t *testing.T) {
	c, rec := newContext(t)
	New(false).SetAccess(c, "token-value")

	require.False(t, findCookie(t, rec, AccessTokenName).Secure)
}

func TestReadBack(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenName, Value: "a"})
	req.AddCookie(&http.Cookie{Name: RefreshTokenName, Value: "r"})
	c := e.NewContext(req, httptest.NewRecorder())

	transport := New(false)
	require.Equal(t, "a", transport.Access(c))
	require.Equal(t, "r", transport.Refresh(c))
}

func TestMissingCookies(t *testing.T) {
	c, _ := newContext(t)
	transport := New(false)
	require.Empty(t, transport.Access(c))
	require.Empty(t, transport.Refresh(c))
}

func TestClearAll(t *testing.T) {
	c, rec := newContext(t)
	New(true).ClearAll(c)

	access := findCookie(t, rec, AccessTokenName)
	refresh := findCookie(t, rec, RefreshTokenName)
	require.Equal(t, -1, access.MaxAge)
	require.Equal(t, -1, refresh.MaxAge)
	require.Empty(t, access.Value)
	require.Empty(t, refresh.Value)
}
