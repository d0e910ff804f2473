package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/colegio-app/colegio/core/session"
)

type inMemEntry struct {
	sess      session.Session
	expiresAt time.Time
}

// InMemStore holds sessions in process memory. Used by tests and local
// runs without Redis.
type InMemStore struct {
	mu      sync.RWMutex
	entries map[string]inMemEntry
}

var _ session.Store = (*InMemStore)(nil) // interface compliance check

func NewInMemStore() *InMemStore {
	return &InMemStore{entries: make(map[string]inMemEntry)}
}

func (store *InMemStore) Save(ctx context.Context, sess session.Session, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.entries[sess.ID] = inMemEntry{sess: sess, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (store *InMemStore) Get(ctx context.Context, id string) (session.Session, error) {
	store.mu.RLock()
	entry, ok := store.entries[id]
	store.mu.RUnlock()

	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		_ = store.Delete(ctx, id)
		return session.Session{}, session.ErrNotFound
	}
	return entry.sess, nil
}

func (store *InMemStore) Delete(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.entries, id)
	return nil
}
