package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type entry struct {
	store     *Store
	expiresAt time.Time // zero: never swept
}

// Registry maps session ids to their Store. The anonymous visitor has no
// entry: callers build a throwaway Store for requests without a session.
type Registry struct {
	logger logrus.FieldLogger

	mu     sync.RWMutex
	stores map[string]entry
}

func NewRegistry(logger logrus.FieldLogger) *Registry {
	return &Registry{logger: logger, stores: make(map[string]entry)}
}

// For returns the store of sessionID, creating it on first use.
// An empty sessionID yields a fresh unregistered store.
func (r *Registry) For(sessionID string) *Store {
	return r.ForSession(sessionID, time.Time{})
}

// ForSession is For for a session that expires at expiresAt. The expiry is
// recorded so Sweep can forget the store once the session is gone.
func (r *Registry) ForSession(sessionID string, expiresAt time.Time) *Store {
	if sessionID == "" {
		return New(r.logger)
	}
	r.mu.RLock()
	e, ok := r.stores[sessionID]
	r.mu.RUnlock()
	if ok && (expiresAt.IsZero() || e.expiresAt.Equal(expiresAt)) {
		return e.store
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok = r.stores[sessionID]
	if !ok {
		e.store = New(r.logger)
	}
	if !expiresAt.IsZero() {
		e.expiresAt = expiresAt
	}
	r.stores[sessionID] = e
	return e.store
}

// Attach registers st under sessionID until expiresAt. Login uses it to keep
// the state of the anonymous request that created the session.
func (r *Registry) Attach(sessionID string, st *Store, expiresAt time.Time) {
	if sessionID == "" || st == nil {
		return
	}
	r.mu.Lock()
	r.stores[sessionID] = entry{store: st, expiresAt: expiresAt}
	r.mu.Unlock()
}

// Drop forgets the store of sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.stores, sessionID)
	r.mu.Unlock()
}

// Sweep forgets every store whose session expired before now and returns how many.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.stores {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(r.stores, id)
			n++
		}
	}
	return n
}

// Len returns the number of registered stores.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stores)
}
