// Package session maps live duplex connections to a room and player identity
// and fans state broadcasts out to them. Broadcast targets are derived from
// the registry's live set at send time, never from a cached per-room list, so
// a connection that outlives a room handoff still receives updates.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// Subscriber is one attached connection. Send must be safe for concurrent use.
type Subscriber interface {
	RoomCode() string
	PlayerID() uuid.UUID
	Send(msg models.ServerMessage) error
}

// Registry is the live set of attached subscribers across all rooms.
type Registry struct {
	mu   sync.RWMutex
	subs map[Subscriber]struct{}
	log  *logrus.Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subs: make(map[Subscriber]struct{}),
		log:  logrus.WithField("component", "session-registry"),
	}
}

// Add attaches a subscriber.
func (r *Registry) Add(s Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[s] = struct{}{}
}

// Remove detaches a subscriber.
func (r *Registry) Remove(s Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, s)
}

// Count returns the number of attached subscribers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// RoomSubscribers snapshots the subscribers attached to a room right now.
func (r *Registry) RoomSubscribers(roomCode string) []Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Subscriber
	for s := range r.subs {
		if s.RoomCode() == roomCode {
			out = append(out, s)
		}
	}
	return out
}

// BroadcastToRoom sends msg to every subscriber of the room. A failing
// channel is skipped, never aborting the loop for the others.
func (r *Registry) BroadcastToRoom(roomCode string, msg models.ServerMessage) {
	for _, s := range r.RoomSubscribers(roomCode) {
		if err := s.Send(msg); err != nil {
			r.log.WithError(err).WithField("room", roomCode).Debug("skipping dead subscriber")
		}
	}
}
