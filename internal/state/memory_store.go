package state

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the in-process Store used by tests and throwaway dev runs.
// The mutex serializes writers so the write-through invariant holds even when
// callers run concurrently.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, slot string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionID + "/" + slot
	entry, ok := s.data[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.now()) {
		delete(s.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, slot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sessionID+"/"+slot] = memoryEntry{value: value}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, sessionID+"/"+slot)
	return nil
}

func (s *MemoryStore) SetEphemeral(_ context.Context, sessionID, slot, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ephemeral slot needs a positive ttl")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sessionID+"/"+slot] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}
