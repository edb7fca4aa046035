// Package session provides the non-SQL session backends.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/domain/repository"
)

// MemoryRepository keeps sessions in process memory. Sessions are lost on restart.
type MemoryRepository struct {
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]entity.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now, sessions: make(map[string]entity.Session)}
}

var _ repository.SessionRepository = (*MemoryRepository)(nil)

func (r *MemoryRepository) Save(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	r.sessions[s.ID] = *s
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if s.Expired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// DeleteExpired removes sessions that expired before now and returns how many were removed.
func (r *MemoryRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
