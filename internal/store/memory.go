package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/lgbarn/chessrules/internal/errors"
	"github.com/lgbarn/chessrules/internal/game"
)

// MemoryStore keeps games in process memory. Snapshots are held encoded, so
// a loaded game shares no storage with the saved one.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

// Create inserts a new game.
func (m *MemoryStore) Create(ctx context.Context, s game.State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[s.ID]; ok {
		return fmt.Errorf("create %s: duplicate id: %w", s.ID, errors.ErrStore)
	}
	m.games[s.ID] = data
	return nil
}

// Save inserts or replaces a game.
func (m *MemoryStore) Save(ctx context.Context, s game.State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.games[s.ID] = data
	m.mu.Unlock()
	return nil
}

// Load returns the saved snapshot of a game.
func (m *MemoryStore) Load(ctx context.Context, id string) (game.State, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return game.State{}, fmt.Errorf("load %s: %w", id, errors.ErrGameNotFound)
	}
	return decode(data)
}

// List returns a summary of every game, most recently updated first.
func (m *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Summary, 0, len(m.games))
	for _, data := range m.games {
		s, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(s))
	}
	SortSummaries(out)
	return out, nil
}

// Delete removes a game.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, errors.ErrGameNotFound)
	}
	delete(m.games, id)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored games.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func encode(s game.State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %v: %w", s.ID, err, errors.ErrStore)
	}
	return data, nil
}

func decode(data []byte) (game.State, error) {
	var s game.State
	if err := json.Unmarshal(data, &s); err != nil {
		return game.State{}, fmt.Errorf("decode: %v: %w", err, errors.ErrStore)
	}
	return s, nil
}

// SortSummaries orders by most recent update, then id.
func SortSummaries(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
}
