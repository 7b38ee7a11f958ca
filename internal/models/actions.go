package models

import (
	"encoding/json"
	"fmt"
)

// ActionType tags an inbound action envelope.
type ActionType string

const (
	ActionJoin      ActionType = "JOIN"
	ActionStart     ActionType = "START"
	ActionPlayCard  ActionType = "PLAY_CARD"
	ActionDrawCard  ActionType = "DRAW_CARD"
	ActionPassTurn  ActionType = "PASS_TURN"
	ActionSayUno    ActionType = "SAY_UNO"
	ActionCatchUno  ActionType = "CATCH_UNO"
	ActionNextRound ActionType = "NEXT_ROUND"
	ActionChat      ActionType = "CHAT"
)

// Envelope is the thin JSON wrapper every inbound action arrives in. The
// payload is decoded into the variant struct for the tagged type; unknown
// types and malformed payloads are rejected at the boundary, before the room
// state machine sees them.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinPayload carries an optional stable identity and display name. An empty
// or unparsable id means the server assigns a fresh one.
type JoinPayload struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// PlayCardPayload names a card by id; the server plays its own copy from the
// player's hand, never the client-supplied fields. ChosenColor is required
// when the named card is wild.
type PlayCardPayload struct {
	PlayerID    string `json:"playerId"`
	Card        Card   `json:"card"`
	ChosenColor Color  `json:"chosenColor,omitempty"`
}

// TurnPayload is shared by DRAW_CARD, PASS_TURN, and SAY_UNO.
type TurnPayload struct {
	PlayerID string `json:"playerId"`
}

// CatchUnoPayload accuses target of a missed UNO call.
type CatchUnoPayload struct {
	AccuserID string `json:"accuserId"`
	TargetID  string `json:"targetId"`
}

// ChatPayload relays an opaque encrypted blob. The server never inspects it.
type ChatPayload struct {
	PlayerID         string `json:"playerId"`
	EncryptedMessage string `json:"encryptedMessage"`
}

// DecodePayload unmarshals the envelope payload into dst. A missing payload
// decodes as the zero value so handlers can validate field-by-field.
func (e Envelope) DecodePayload(dst any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
