package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// fakeSubscriber implements Subscriber with a scriptable send failure.
type fakeSubscriber struct {
	mu       sync.Mutex
	room     string
	playerID uuid.UUID
	failSend bool
	received []models.ServerMessage
}

func (s *fakeSubscriber) RoomCode() string    { return s.room }
func (s *fakeSubscriber) PlayerID() uuid.UUID { return s.playerID }

func (s *fakeSubscriber) Send(msg models.ServerMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend {
		return errors.New("connection gone")
	}
	s.received = append(s.received, msg)
	return nil
}

func (s *fakeSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func TestRoomSubscribersFiltersByRoom(t *testing.T) {
	reg := NewRegistry()
	a := &fakeSubscriber{room: "ALPHA", playerID: uuid.New()}
	b := &fakeSubscriber{room: "ALPHA", playerID: uuid.New()}
	c := &fakeSubscriber{room: "BRAVO", playerID: uuid.New()}
	reg.Add(a)
	reg.Add(b)
	reg.Add(c)

	assert.Equal(t, 3, reg.Count())
	assert.Len(t, reg.RoomSubscribers("ALPHA"), 2)
	assert.Len(t, reg.RoomSubscribers("BRAVO"), 1)
	assert.Empty(t, reg.RoomSubscribers("CHARLIE"))
}

func TestBroadcastSkipsFailingSubscriber(t *testing.T) {
	reg := NewRegistry()
	good := &fakeSubscriber{room: "ALPHA"}
	dead := &fakeSubscriber{room: "ALPHA", failSend: true}
	other := &fakeSubscriber{room: "BRAVO"}
	reg.Add(good)
	reg.Add(dead)
	reg.Add(other)

	reg.BroadcastToRoom("ALPHA", models.Notification("round over"))

	assert.Equal(t, 1, good.count(), "healthy subscriber still receives despite a dead peer")
	assert.Equal(t, 0, dead.count())
	assert.Equal(t, 0, other.count(), "other rooms are untouched")
}

// Targets are resolved from the live set at send time: a removed subscriber
// gets nothing, a late-added one gets everything after its Add.
func TestBroadcastUsesLiveSet(t *testing.T) {
	reg := NewRegistry()
	early := &fakeSubscriber{room: "ALPHA"}
	reg.Add(early)

	reg.BroadcastToRoom("ALPHA", models.Notification("first"))

	late := &fakeSubscriber{room: "ALPHA"}
	reg.Add(late)
	reg.Remove(early)

	reg.BroadcastToRoom("ALPHA", models.Notification("second"))

	assert.Equal(t, 1, early.count())
	assert.Equal(t, 1, late.count())
	assert.Equal(t, 1, reg.Count())
}
