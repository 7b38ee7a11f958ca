// Package cache publishes per-room action records to a Redis queue for the
// historian consumer. Publishing is best-effort: a missing or unreachable
// Redis never affects game flow.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActionQueueKey is the Redis list the historian consumes from.
const ActionQueueKey = "pruno:game_actions"

// ActionRecord is one applied room action, ordered by ActionIndex within a room.
type ActionRecord struct {
	RoomCode    string         `json:"roomCode"`
	ActionIndex int            `json:"actionIndex"`
	ActorID     uuid.UUID      `json:"actorId"`
	ActionType  string         `json:"actionType"`
	Payload     map[string]any `json:"payload,omitempty"`
	Timestamp   int64          `json:"timestamp"`
}

// Historian queues action records to Redis.
type Historian struct {
	rdb *redis.Client
}

// NewHistorian wraps an existing Redis client. A nil client yields a nil
// Historian, which is safe to call.
func NewHistorian(rdb *redis.Client) *Historian {
	if rdb == nil {
		return nil
	}
	return &Historian{rdb: rdb}
}

// Publish appends one record to the action queue.
func (h *Historian) Publish(ctx context.Context, rec ActionRecord) error {
	if h == nil || h.rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := h.rdb.LPush(ctx, ActionQueueKey, data).Err(); err != nil {
		return fmt.Errorf("publish action record: %w", err)
	}
	return nil
}
