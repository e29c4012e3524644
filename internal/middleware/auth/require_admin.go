package auth

import (
	"github.com/labstack/echo/v4"

	authsvc "github.com/malekbenamor02/portfolio/internal/auth"
	"github.com/malekbenamor02/portfolio/internal/cookies"
	"github.com/malekbenamor02/portfolio/internal/handlers"
)

// Guard wraps every protected route in the single "require valid admin"
// check: access cookie, signature and expiry, then a fresh user lookup.
type Guard struct {
	Service *authsvc.Service
	Cookies *cookies.Transport
}

func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, claims, err := g.Service.RequireAdmin(c.Request().Context(), g.Cookies.Access(c))
		if err != nil {
			return handlers.HTTPError(err)
		}

		c.Set("user", user)
		c.Set("claims", claims)
		return next(c)
	}
}
