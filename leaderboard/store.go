package leaderboard

import (
	"context"
	"errors"
	"sync"
)

// ErrStoreClosed is returned by stores used after Close
var ErrStoreClosed = errors.New("leaderboard store closed")

// Store persists the whole leaderboard; entries are never written one by one
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// Updater is implemented by stores with an atomic read-modify-write
// fn receives the currently persisted list and returns the list to persist
type Updater interface {
	Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error)
}

// MemoryStore keeps the leaderboard in process memory
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore creates a store seeded with entries
func NewMemoryStore(entries ...Entry) *MemoryStore {
	return &MemoryStore{entries: append([]Entry(nil), entries...)}
}

// Load implements Store
func (m *MemoryStore) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...), nil
}

// Save implements Store
func (m *MemoryStore) Save(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]Entry(nil), entries...)
	return nil
}

// Update implements Updater
func (m *MemoryStore) Update(ctx context.Context, fn func([]Entry) []Entry) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = fn(append([]Entry(nil), m.entries...))
	return append([]Entry(nil), m.entries...), nil
}
