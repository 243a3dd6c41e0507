// Package prefs persists learner preferences. The assistant currently keeps
// exactly one: the chatbot mute flag, stored as the literal strings "true"
// and "false" under the chatbot_muted key.
package prefs

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MutedKey is the persisted preference name. The key and its string encoding
// are a compatibility contract with existing clients.
const MutedKey = "chatbot_muted"

// Store reads and writes the mute preference for one learner.
type Store interface {
	Muted(ctx context.Context, learnerID uuid.UUID) (bool, error)
	SetMuted(ctx context.Context, learnerID uuid.UUID, muted bool) error
}

// MemoryStore is an in-process Store for tests and single-node development.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[uuid.UUID]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[uuid.UUID]string)}
}

func (s *MemoryStore) Muted(_ context.Context, learnerID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[learnerID] == "true", nil
}

func (s *MemoryStore) SetMuted(_ context.Context, learnerID uuid.UUID, muted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[learnerID] = encodeBool(muted)
	return nil
}

func encodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
