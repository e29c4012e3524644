package ratelimit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/malekbenamor02/portfolio/internal/logging"
)

// Middleware guards a public route group with the given policy.
// Limiter errors fail open here: a counter outage on read-only
// endpoints must not take the site down.
func Middleware(l Limiter, action string, p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := l.Allow(c.Request().Context(), Key(action, c.RealIP()), p)
			if err != nil {
				logging.FromContext(c.Request().Context()).Warn("rate limiter unavailable, failing open",
					"action", action, "error", err)
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
