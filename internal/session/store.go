package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned by a Store when no token is currently persisted.
var ErrNoSession = errors.New("session: no stored token")

// Store abstracts the single-slot persistence of the active session token.
// Implementations must make Clear idempotent: clearing an empty store is a
// no-op, not an error.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process Store used by tests and as a fallback when no
// persistent store is configured.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	present bool
}

// NewMemoryStore returns an empty in-process token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored token or ErrNoSession.
func (s *MemoryStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return "", ErrNoSession
	}
	return s.token, nil
}

// Set replaces the stored token.
func (s *MemoryStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.present = true
	s.mu.Unlock()
	return nil
}

// Clear removes the stored token. Clearing an empty store succeeds.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.present = false
	s.mu.Unlock()
	return nil
}
