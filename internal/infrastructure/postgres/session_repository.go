package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
)

// SessionRepository stores sessions in the sessions table.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (id, token, user_id, user_name, user_email, is_admin, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			user_id = EXCLUDED.user_id,
			user_name = EXCLUDED.user_name,
			user_email = EXCLUDED.user_email,
			is_admin = EXCLUDED.is_admin,
			expires_at = EXCLUDED.expires_at
	`, s.ID, s.Token, s.User.ID, s.User.Name, s.User.Email, s.User.IsAdmin, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	s := &entity.Session{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, token, user_id, user_name, user_email, is_admin, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, id, time.Now())

	if err := row.Scan(&s.ID, &s.Token, &s.User.ID, &s.User.Name, &s.User.Email, &s.User.IsAdmin,
		&s.CreatedAt, &s.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}
	s.User.Token = s.Token
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpired removes sessions that expired before now and returns how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
