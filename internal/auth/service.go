package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malekbenamor02/portfolio/internal/hash"
	"github.com/malekbenamor02/portfolio/internal/logging"
	"github.com/malekbenamor02/portfolio/internal/models"
	"github.com/malekbenamor02/portfolio/internal/ratelimit"
	"github.com/malekbenamor02/portfolio/internal/store"
	"github.com/malekbenamor02/portfolio/internal/tokens"
)

// Service drives the login lifecycle: issue short-lived access tokens
// and long-lived revocable refresh tokens, guard protected routes, and
// revoke sessions at logout. Access tokens stay stateless so the common
// path never hits the store; refresh tokens are paired with a session
// row so they can be revoked before their cryptographic expiry.
type Service struct {
	Store         *store.Store
	Limiter       ratelimit.Limiter
	JWTSecret     []byte
	RefreshSecret []byte
}

func NewService(st *store.Store, limiter ratelimit.Limiter, jwtSecret, refreshSecret []byte) *Service {
	return &Service{
		Store:         st,
		Limiter:       limiter,
		JWTSecret:     jwtSecret,
		RefreshSecret: refreshSecret,
	}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *Service) checkSecrets() error {
	if len(s.JWTSecret) == 0 || len(s.RefreshSecret) == 0 {
		return ErrServerMisconfigured
	}
	return nil
}

// Login verifies credentials and creates a new session. The session row
// must exist before any token leaves the server: a failed write fails
// the whole login.
func (s *Service) Login(ctx context.Context, email, password, clientIP, userAgent string) (*models.User, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if err := s.checkSecrets(); err != nil {
		l.Error("login failed", "reason", "missing signing secret")
		return nil, nil, err
	}

	// Fail closed: a broken limiter must not open the login endpoint.
	allowed, err := s.Limiter.Allow(ctx, ratelimit.Key("login", clientIP), ratelimit.LoginPolicy)
	if err != nil {
		l.Error("rate limiter error, failing closed", "error", err)
		return nil, nil, ErrRateLimited
	}
	if !allowed {
		l.Warn("login rate limited", "client_ip", clientIP)
		return nil, nil, ErrRateLimited
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same class as a bad password: no account enumeration.
			return nil, nil, ErrInvalidCredentials
		}
		l.Error("user lookup failed", "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !user.IsActive {
		l.Warn("login for inactive account", "user_id", user.ID)
		return nil, nil, ErrAccountInactive
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login with wrong password", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	now := time.Now()
	accessToken, err := tokens.SignAccess(user.ID, user.Email, user.Role, s.JWTSecret, now)
	if err != nil {
		l.Error("sign access token failed", "error", err)
		return nil, nil, fmt.Errorf("%w: sign access", ErrServerMisconfigured)
	}

	sessionID := uuid.NewString()
	refreshToken, err := tokens.SignRefresh(user.ID, sessionID, s.RefreshSecret, now)
	if err != nil {
		l.Error("sign refresh token failed", "error", err)
		return nil, nil, fmt.Errorf("%w: sign refresh", ErrServerMisconfigured)
	}

	session := &models.Session{
		UserID:           user.ID,
		RefreshTokenHash: tokens.Sha256Hex(refreshToken),
		ExpiresAt:        now.Add(tokens.RefreshTTL),
		ClientIP:         clientIP,
		UserAgent:        userAgent,
	}
	if err := s.Store.CreateSession(ctx, session); err != nil {
		l.Error("session create failed", "user_id", user.ID, "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	l.Info("login ok", "user_id", user.ID)
	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RequireAdmin is the guard for every protected route. Token validity
// is necessary but not sufficient: the user is re-fetched so a role
// change or deactivation since issuance locks the token out.
func (s *Service) RequireAdmin(ctx context.Context, accessToken string) (*models.User, *tokens.AccessClaims, error) {
	if err := s.checkSecrets(); err != nil {
		return nil, nil, err
	}
	if accessToken == "" {
		return nil, nil, ErrUnauthorized
	}

	claims, err := tokens.ParseAccess(accessToken, s.JWTSecret)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	user, err := s.Store.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUnauthorized
		}
		logging.FromContext(ctx).Error("user lookup failed", "svc", "auth.guard", "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if !user.IsActive || user.Role != "admin" {
		return nil, nil, ErrUnauthorized
	}

	return user, claims, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// refresh token and its session are not rotated: the session window is
// fixed at login for its full seven days.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	if err := s.checkSecrets(); err != nil {
		return nil, "", err
	}
	if refreshToken == "" {
		return nil, "", ErrUnauthorized
	}

	if _, err := tokens.ParseRefresh(refreshToken, s.RefreshSecret); err != nil {
		return nil, "", ErrUnauthorized
	}

	// The digest is the authoritative session identity, not the sid claim.
	session, err := s.Store.FindValidSessionByHash(ctx, tokens.Sha256Hex(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrUnauthorized
		}
		l.Error("session lookup failed", "error", err)
		return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	user, err := s.Store.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrUnauthorized
		}
		l.Error("user lookup failed", "error", err)
		return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !user.IsActive {
		return nil, "", ErrUnauthorized
	}

	accessToken, err := tokens.SignAccess(user.ID, user.Email, user.Role, s.JWTSecret, time.Now())
	if err != nil {
		l.Error("sign access token failed", "error", err)
		return nil, "", fmt.Errorf("%w: sign access", ErrServerMisconfigured)
	}

	l.Info("access token refreshed", "user_id", user.ID)
	return user, accessToken, nil
}

// Logout revokes the session behind the presented refresh token. It is
// best-effort and never fails outward; cookie clearing is the caller's
// job and happens regardless.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}

	if err := s.Store.RevokeSessionByHash(ctx, tokens.Sha256Hex(refreshToken)); err != nil {
		logging.FromContext(ctx).Warn("session revoke failed", "svc", "auth.logout", "error", err)
	}
}
