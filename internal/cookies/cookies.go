package cookies

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/malekbenamor02/portfolio/internal/tokens"
)

// Cookie names are a wire contract with the browser.
const (
	AccessTokenName  = "access_token"
	RefreshTokenName = "refresh_token"
)

// Transport places and retrieves both auth tokens as HttpOnly cookies.
// The refresh cookie gets SameSite=Strict: it is only ever sent to the
// same-origin refresh endpoint, so it can afford the stricter setting.
type Transport struct {
	Secure bool
}

func New(secure bool) *Transport {
	return &Transport{Secure: secure}
}

func (t *Transport) SetAccess(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     AccessTokenName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *Transport) SetRefresh(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshTokenName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Access returns the access token or "" when the cookie is absent.
func (t *Transport) Access(c echo.Context) string {
	cookie, err := c.Cookie(AccessTokenName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Refresh returns the refresh token or "" when the cookie is absent.
func (t *Transport) Refresh(c echo.Context) string {
	cookie, err := c.Cookie(RefreshTokenName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (t *Transport) ClearAll(c echo.Context) {
	c.SetCookie(t.expired(AccessTokenName, http.SameSiteLaxMode))
	c.SetCookie(t.expired(RefreshTokenName, http.SameSiteStrictMode))
}

func (t *Transport) expired(name string, sameSite http.SameSite) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: sameSite,
	}
}
