package models

import (
	"time"
)

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Name         string `json:"name"`
	Role         string `gorm:"not null"             json:"role"`
	IsActive     bool   `gorm:"default:true"         json:"is_active"`
}

// Session is one row per login. The raw refresh token is never stored,
// only its SHA-256 digest, which is also the lookup key.
type Session struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           string     `gorm:"index;not null"           json:"user_id"`
	RefreshTokenHash string     `gorm:"uniqueIndex;not null"     json:"-"`
	ExpiresAt        time.Time  `gorm:"not null"                 json:"expires_at"`
	RevokedAt        *time.Time `json:"revoked_at"`
	CreatedAt        time.Time  `json:"created_at"`
	ClientIP         string     `json:"client_ip"`
	UserAgent        string     `json:"user_agent"`
}

// Valid reports whether the session can still be used for refresh.
func (s *Session) Valid(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
