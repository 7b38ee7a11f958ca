package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Prem-Healthinformatics/pruno/internal/cache"
	"github.com/Prem-Healthinformatics/pruno/internal/models"
	"github.com/Prem-Healthinformatics/pruno/internal/store"
)

// BroadcastFunc fans a message out to every live subscriber of a room. The
// registry derives the target set at send time.
type BroadcastFunc func(roomCode string, msg models.ServerMessage)

// Manager resolves room codes to live Room instances, hydrating persisted
// state on first access so rooms survive process restarts.
type Manager struct {
	mu    sync.Mutex
	rooms map[string]*Room

	store     store.Repository
	historian *cache.Historian
	broadcast BroadcastFunc
	log       *logrus.Entry
}

// NewManager creates a room manager over the given store and broadcast fanout.
func NewManager(repo store.Repository, hist *cache.Historian, broadcast BroadcastFunc) *Manager {
	return &Manager{
		rooms:     make(map[string]*Room),
		store:     repo,
		historian: hist,
		broadcast: broadcast,
		log:       logrus.WithField("component", "room-manager"),
	}
}

// GetOrCreate returns the live room for code, loading the persisted state for
// a code not yet resident, or creating a fresh waiting room for an unseen one.
func (m *Manager) GetOrCreate(ctx context.Context, code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if room, ok := m.rooms[code]; ok {
		return room, nil
	}

	state, err := m.store.LoadRoom(ctx, code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		state = models.NewGameState(code)
		m.log.WithField("room", code).Info("created room")
	case err != nil:
		return nil, fmt.Errorf("hydrate room %s: %w", code, err)
	default:
		m.log.WithField("room", code).Info("hydrated room from store")
	}

	room := NewRoom(state, m.store, m.historian, uint64(time.Now().UnixNano()))
	room.BroadcastFn = func(msg models.ServerMessage) {
		m.broadcast(code, msg)
	}
	m.rooms[code] = room
	return room, nil
}
