package session

import (
	"context"
	"sync"

	"gce/internal/identity"
)

// MemoryStore holds the serialized session in process memory.
// It stores bytes rather than the struct so it exercises the same codec
// as the durable backends.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (identity.Identity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return identity.Identity{}, false, nil
	}
	id, ok := decodeOrAbsent("memory", s.data)
	return id, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, id identity.Identity) error {
	data, err := Encode(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// SetRaw stores an arbitrary payload, bypassing validation.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}
