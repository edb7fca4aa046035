package session

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/postgres"
)

const (
	KindMemory   = "memory"
	KindRedis    = "redis"
	KindPostgres = "postgres"
)

// New returns the backend named by kind. The redis and postgres backends
// require their client to be non-nil.
func New(kind string, rdb *redis.Client, pool *pgxpool.Pool) (repository.SessionRepository, error) {
	switch kind {
	case "", KindMemory:
		return NewMemoryRepository(), nil
	case KindRedis:
		if rdb == nil {
			return nil, fmt.Errorf("session store %q needs REDIS_ADDR", kind)
		}
		return NewRedisRepository(rdb), nil
	case KindPostgres:
		if pool == nil {
			return nil, fmt.Errorf("session store %q needs a database connection", kind)
		}
		return postgres.NewSessionRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}
