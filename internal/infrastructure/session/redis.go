package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

func keySession(id string) string { return "session:" + id }

// RedisRepository stores sessions as JSON with a TTL matching ExpiresAt.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

var _ repository.SessionRepository = (*RedisRepository)(nil)

func (r *RedisRepository) Save(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if s.ExpiresAt.IsZero() {
		ttl = 0
	} else if ttl <= 0 {
		return helpers.RedisDel(ctx, r.rdb, keySession(s.ID))
	}
	return helpers.RedisSetJSON(ctx, r.rdb, keySession(s.ID), s, ttl)
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	var s entity.Session
	ok, err := helpers.RedisGetJSON(ctx, r.rdb, keySession(id), &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, r.rdb, keySession(id))
}
