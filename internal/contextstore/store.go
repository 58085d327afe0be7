package contextstore

import (
	"context"
	"sync"

	"visiting-card-bot/internal/entity"
)

// Store holds the most recent card per conversation. One slot per key: Put
// unconditionally overwrites, Get never merges, and no history is retained.
// This grounds follow-up answering only; the append-only ledger, not this
// store, is the system of record.
type Store interface {
	Put(ctx context.Context, conversationID string, card entity.Card) error
	Get(ctx context.Context, conversationID string) (entity.Card, bool, error)
}

// Memory is the default in-process store. Entries live for the process
// lifetime; losing them on restart is an accepted limitation. The mutex keeps
// the store safe even if a deployment ever dispatches concurrently.
type Memory struct {
	mu    sync.RWMutex
	cards map[string]entity.Card
}

func NewMemory() *Memory {
	return &Memory{cards: make(map[string]entity.Card)}
}

func (m *Memory) Put(_ context.Context, conversationID string, card entity.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[conversationID] = card
	return nil
}

func (m *Memory) Get(_ context.Context, conversationID string) (entity.Card, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	card, ok := m.cards[conversationID]
	return card, ok, nil
}
