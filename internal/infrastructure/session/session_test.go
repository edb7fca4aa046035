package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRepository()
	r.now = func() time.Time { return now }

	s := &entity.Session{ID: "s1", Token: "tok", User: entity.UserInfo{ID: "u1", Name: "Ann"}, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, r.Save(ctx, s))

	got, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.User.Name)

	got.User.Name = "changed"
	again, _ := r.Get(ctx, "s1")
	assert.Equal(t, "Ann", again.User.Name, "Get returns a copy")

	require.NoError(t, r.Delete(ctx, "s1"))
	_, err = r.Get(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestMemoryRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRepository()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Save(ctx, &entity.Session{ID: "old", ExpiresAt: now.Add(-time.Second)}))
	_, err := r.Get(ctx, "old")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	assert.Empty(t, r.sessions)
}

func TestNew(t *testing.T) {
	repo, err := New("", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepository{}, repo)

	_, err = New(KindRedis, nil, nil)
	assert.Error(t, err)
	_, err = New(KindPostgres, nil, nil)
	assert.Error(t, err)
	_, err = New("mongo", nil, nil)
	assert.Error(t, err)
}

func TestMemoryRepositoryDeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRepository()

	require.NoError(t, r.Save(ctx, &entity.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, r.Save(ctx, &entity.Session{ID: "edge", ExpiresAt: now}))
	require.NoError(t, r.Save(ctx, &entity.Session{ID: "live", ExpiresAt: now.Add(time.Minute)}))

	n, err := r.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, 1, r.Len())
}
