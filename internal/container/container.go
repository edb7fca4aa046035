package container

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/config"
	"github.com/oksasatya/discount-catalog/internal/application"
	repo "github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/restapi"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/session"
	"github.com/oksasatya/discount-catalog/internal/store"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/view"
)

// Container holds the components shared by the router modules.
// Optional infrastructure (Redis, Postgres, GCS, RabbitMQ) is nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Redis     *redis.Client
	PGPool    *pgxpool.Pool
	GCS       *storage.Client
	RabbitPub *helpers.RabbitPublisher

	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	API      *restapi.Client
	Sessions repo.SessionRepository
	Stores   *store.Registry
	View     *view.Renderer
}

// New connects the configured infrastructure and builds the shared components.
// Only the session backend named by SESSION_STORE is mandatory.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		API:     restapi.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger.WithField("component", "restapi")),
		Stores:  store.NewRegistry(logger.WithField("component", "store")),
	}

	v, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	c.View = v

	if cfg.RedisAddr != "" {
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
			_ = c.Redis.Close()
			c.Redis = nil
		}
	}

	if cfg.SessionStore == session.KindPostgres {
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		if err := postgres.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			c.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	sessions, err := session.New(cfg.SessionStore, c.Redis, c.PGPool)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Sessions = sessions

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable; image upload disabled")
		} else {
			c.GCS = gcs
		}
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; sharing disabled")
		} else {
			c.RabbitPub = pub
		}
	}

	logger.WithFields(logrus.Fields{
		"session_store": cfg.SessionStore,
		"redis":         c.Redis != nil,
		"gcs":           c.GCS != nil,
		"rabbitmq":      c.RabbitPub != nil,
	}).Info("container ready")
	return c, nil
}

// Publisher returns the email queue publisher, or nil when RabbitMQ is off.
func (c *Container) Publisher() application.Publisher {
	if c.RabbitPub == nil {
		return nil
	}
	return c.RabbitPub
}

// expiringSessions is implemented by session backends that keep expired
// records until they are purged (memory, postgres). Redis expires keys itself.
type expiringSessions interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SweepSessions purges sessions that expired before now and forgets their stores.
func (c *Container) SweepSessions(ctx context.Context, now time.Time) {
	if exp, ok := c.Sessions.(expiringSessions); ok {
		n, err := exp.DeleteExpired(ctx, now)
		if err != nil {
			c.Logger.WithError(err).Warn("purge expired sessions failed")
		} else if n > 0 {
			c.Logger.WithField("count", n).Info("expired sessions purged")
		}
	}
	if n := c.Stores.Sweep(now); n > 0 {
		c.Logger.WithField("count", n).Info("expired session stores dropped")
	}
}

// StartSessionJanitor runs SweepSessions every interval until ctx is done.
func (c *Container) StartSessionJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				c.SweepSessions(ctx, now)
			}
		}
	}()
}

// Close releases every connection the container opened.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
