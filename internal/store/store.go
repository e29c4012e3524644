package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row. Driver and
// timeout failures come back as ordinary wrapped errors.
var ErrNotFound = errors.New("store: not found")

// queryTimeout bounds every store call so an unreachable database
// turns into an error instead of a hung request.
const queryTimeout = 3 * time.Second

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}
