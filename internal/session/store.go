package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound represents a missing or expired session.
var ErrSessionNotFound = errors.New("session: not found")

// Store persists session state keyed by session ID.
type Store interface {
	Save(ctx context.Context, id string, state State) error
	Get(ctx context.Context, id string) (State, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns a random session identifier.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore keeps sessions in-process. It is the fallback when Redis is
// not configured; sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryStore returns an in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Save stores state and refreshes its expiry. Expired entries are swept on
// every write so sessions that are never read again cannot pile up.
func (s *MemoryStore) Save(_ context.Context, id string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.entries[id] = memoryEntry{state: state, expiresAt: now.Add(s.ttl)}
	return nil
}

// Get returns the stored state or ErrSessionNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return State{}, ErrSessionNotFound
	}
	return entry.state, nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
