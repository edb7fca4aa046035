package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists sessions. Save upserts by ID.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
