package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/malekbenamor02/portfolio/internal/handlers"
	authmw "github.com/malekbenamor02/portfolio/internal/middleware/auth"
	"github.com/malekbenamor02/portfolio/internal/ratelimit"
)

type Deps struct {
	AuthHandler *handlers.AuthHandler
	Guard       *authmw.Guard
	Limiter     ratelimit.Limiter
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	auth := e.Group("/api/auth")

	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/me", d.AuthHandler.Me, d.Guard.RequireAdmin)

	// Content CRUD handlers mount here; everything under /api/admin goes
	// through the guard.
	admin := e.Group("/api/admin", d.Guard.RequireAdmin)
	admin.GET("/me", d.AuthHandler.Me)

	public := e.Group("/api/public",
		ratelimit.Middleware(d.Limiter, "public_read", ratelimit.PublicReadPolicy))
	public.GET("/status", func(c echo.Context) error {
		return c.JSON(200, echo.Map{"status": "ok"})
	})
}
