package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/malekbenamor02/portfolio/internal/models"
)

func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.DB.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("store: create session: %w", err)
	}
	return nil
}

// FindValidSessionByHash returns the session for the given refresh-token
// digest, but only while it is live: not revoked and not past expiry.
func (s *Store) FindValidSessionByHash(ctx context.Context, hash string) (*models.Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var session models.Session
	err := s.DB.WithContext(ctx).
		Where("refresh_token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find session: %w", err)
	}
	return &session, nil
}

// RevokeSessionByHash is idempotent: revoking a session that is missing
// or already revoked is not an error.
func (s *Store) RevokeSessionByHash(ctx context.Context, hash string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := time.Now()
	result := s.DB.WithContext(ctx).
		Model(&models.Session{}).
		Where("refresh_token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", &now)
	if result.Error != nil {
		return fmt.Errorf("store: revoke session: %w", result.Error)
	}
	return nil
}
