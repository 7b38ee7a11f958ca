// Package models defines the shared data types for the pruno game server:
// cards, players, the per-room game state, and the wire-level action and
// message envelopes.
package models

import (
	"github.com/google/uuid"
)

// Color is a card's suit, or "wild" for colorless cards.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorWild   Color = "wild"
)

// Suits lists the four playable colors, excluding wild.
var Suits = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

// IsSuit reports whether c is one of the four playable colors.
func (c Color) IsSuit() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow:
		return true
	}
	return false
}

// Value is a card's face value: a numeral "0".."9", an action value, or a wild.
type Value string

const (
	ValueSkip         Value = "skip"
	ValueReverse      Value = "reverse"
	ValueDrawTwo      Value = "draw_two"
	ValueWild         Value = "wild"
	ValueWildDrawFour Value = "wild_draw_four"
)

// Numerals lists the ten numeral values in face order.
var Numerals = []Value{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Actions lists the per-color action values.
var Actions = []Value{ValueSkip, ValueReverse, ValueDrawTwo}

// Wilds lists the colorless values.
var Wilds = []Value{ValueWild, ValueWildDrawFour}

// IsAction reports whether v is skip, reverse, or draw_two.
func (v Value) IsAction() bool {
	return v == ValueSkip || v == ValueReverse || v == ValueDrawTwo
}

// IsWild reports whether v is wild or wild_draw_four.
func (v Value) IsWild() bool {
	return v == ValueWild || v == ValueWildDrawFour
}

// Card is a single card. Immutable once created; identity is carried by ID so
// two cards with equal color/value remain distinct.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color Color     `json:"color"`
	Value Value     `json:"value"`
}

// Player is one seat at the table. Identity is stable across reconnects.
type Player struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Hand []Card    `json:"hand"`

	// Score accumulates penalty points across rounds.
	Score int `json:"score"`

	// SaidUno is the player's standing UNO claim. Cleared whenever the hand
	// grows above one card or a new round starts.
	SaidUno bool `json:"saidUno"`

	// HasDrawn is true only while the player is in the drew-a-playable-card,
	// must-play-or-pass sub-phase of their turn.
	HasDrawn bool `json:"hasDrawn"`
}

// Status is the room lifecycle state.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusRoundOver Status = "round_over"
	StatusFinished  Status = "finished"
)

// GameState is the canonical state of one room. The DrawPile is authoritative
// server-side state and is stripped before any broadcast; DeckCount is the
// only deck-size information clients receive.
type GameState struct {
	RoomID  string    `json:"roomId"`
	Players []*Player `json:"players"`

	DrawPile    []Card `json:"drawPile,omitempty"`
	DiscardPile []Card `json:"discardPile"`
	DeckCount   int    `json:"deckCount"`

	TurnIndex int    `json:"turnIndex"`
	Direction int    `json:"direction"`
	Status    Status `json:"status"`

	// CurrentColor is the color new plays must match. Distinct from the
	// discard top's printed color: a wild's played color is chosen separately.
	CurrentColor Color `json:"currentColor"`

	RoundWinnerID uuid.UUID `json:"roundWinnerId,omitempty"`
	MatchWinnerID uuid.UUID `json:"matchWinnerId,omitempty"`
}

// NewGameState returns an empty waiting room for the given code.
func NewGameState(roomID string) *GameState {
	return &GameState{
		RoomID:       roomID,
		Players:      []*Player{},
		DiscardPile:  []Card{},
		TurnIndex:    0,
		Direction:    1,
		Status:       StatusWaiting,
		CurrentColor: ColorRed,
	}
}

// PlayerByID returns the player with the given id, or nil.
func (g *GameState) PlayerByID(id uuid.UUID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil when TurnIndex is
// out of range (only possible outside of playing status).
func (g *GameState) CurrentPlayer() *Player {
	if g.TurnIndex < 0 || g.TurnIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.TurnIndex]
}

// DiscardTop returns the active top card of the discard pile.
func (g *GameState) DiscardTop() (Card, bool) {
	if len(g.DiscardPile) == 0 {
		return Card{}, false
	}
	return g.DiscardPile[len(g.DiscardPile)-1], true
}
