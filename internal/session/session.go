package session

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

const writeTimeout = 5 * time.Second

// Session is one websocket connection subscribed to a room. The player
// identity is bound once a JOIN (or a guest token) resolves it.
type Session struct {
	conn *websocket.Conn
	room string

	mu       sync.Mutex
	playerID uuid.UUID
}

// New wraps an accepted websocket connection for a room.
func New(conn *websocket.Conn, roomCode string) *Session {
	return &Session{conn: conn, room: roomCode}
}

// RoomCode returns the room this session is subscribed to.
func (s *Session) RoomCode() string { return s.room }

// PlayerID returns the bound player identity, or uuid.Nil before any JOIN.
func (s *Session) PlayerID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

// BindPlayer associates the session with a player identity.
func (s *Session) BindPlayer(playerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerID = playerID
}

// Send writes one message to the connection with a bounded deadline.
func (s *Session) Send(msg models.ServerMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, s.conn, msg)
}
