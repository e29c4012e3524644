package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/malekbenamor02/portfolio/internal/auth"
	"github.com/malekbenamor02/portfolio/internal/cookies"
	"github.com/malekbenamor02/portfolio/internal/events"
	"github.com/malekbenamor02/portfolio/internal/logging"
	"github.com/malekbenamor02/portfolio/internal/models"
)

type AuthHandler struct {
	Service  *auth.Service
	Cookies  *cookies.Transport
	Producer *events.Producer
}

// HTTPError maps the auth error classes onto HTTP statuses. Client
// failures keep their generic messages; operational failures become
// 5xx with nothing else attached.
func HTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, auth.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		return echo.NewHTTPError(http.StatusUnauthorized, "account is inactive")
	case errors.Is(err, auth.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, auth.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, pair, err := h.Service.Login(
		c.Request().Context(),
		req.Email,
		req.Password,
		c.RealIP(),
		c.Request().UserAgent(),
	)
	if err != nil {
		return HTTPError(err)
	}

	h.Cookies.SetAccess(c, pair.AccessToken)
	h.Cookies.SetRefresh(c, pair.RefreshToken)

	h.publish(c, "user_logged_in", user.ID)

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	user, accessToken, err := h.Service.Refresh(c.Request().Context(), h.Cookies.Refresh(c))
	if err != nil {
		return HTTPError(err)
	}

	h.Cookies.SetAccess(c, accessToken)

	h.publish(c, "access_refreshed", user.ID)

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Logout always succeeds from the client's point of view: the revoke is
// best-effort, the cookies are cleared no matter what.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Service.Logout(c.Request().Context(), h.Cookies.Refresh(c))

	h.Cookies.ClearAll(c)

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me runs behind the admin guard and just echoes the user it resolved.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := c.Get("user").(*models.User)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (h *AuthHandler) publish(c echo.Context, eventType, userID string) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.Publish(ctx, eventType, userID, map[string]interface{}{
		"client_ip":  c.RealIP(),
		"user_agent": c.Request().UserAgent(),
	}); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed",
			"event", eventType, "error", err)
	}
}
