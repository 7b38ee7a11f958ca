package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// MemoryRepository keeps room snapshots in process memory. Used in tests and
// when no database is configured. Snapshots are stored as marshaled JSON so
// loads always return independent copies.
type MemoryRepository struct {
	mu    sync.RWMutex
	rooms map[string][]byte
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rooms: make(map[string][]byte)}
}

func (r *MemoryRepository) SaveRoom(_ context.Context, state *models.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", state.RoomID, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[state.RoomID] = data
	return nil
}

func (r *MemoryRepository) LoadRoom(_ context.Context, code string) (*models.GameState, error) {
	r.mu.RLock()
	data, ok := r.rooms[code]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &state, nil
}

func (r *MemoryRepository) Close(_ context.Context) error {
	return nil
}
