// Package game owns the authoritative per-room state machine. One Room is the
// single owner of its GameState; all actions against it are serialized under
// the room mutex, so two actions for the same room never interleave. Rooms
// are independent and run fully in parallel.
package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Prem-Healthinformatics/pruno/internal/cache"
	"github.com/Prem-Healthinformatics/pruno/internal/deck"
	"github.com/Prem-Healthinformatics/pruno/internal/models"
	"github.com/Prem-Healthinformatics/pruno/internal/rules"
	"github.com/Prem-Healthinformatics/pruno/internal/scoring"
	"github.com/Prem-Healthinformatics/pruno/internal/store"
)

const (
	// MaxPlayers is the seat limit per room.
	MaxPlayers = 6
	// HandSize is the number of cards dealt to each player at round start.
	HandSize = 7
	// TargetScore ends the match once a player's cumulative score reaches it.
	TargetScore = 500
	// MinPlayers is the minimum to start a round.
	MinPlayers = 2
)

// Conn is one subscriber connection from the room's point of view. Send
// replies to that connection only; BindPlayer associates the connection with
// a player identity once a JOIN resolves.
type Conn interface {
	Send(msg models.ServerMessage) error
	BindPlayer(playerID uuid.UUID)
}

// Room applies actions to one room's GameState. Every mutating handler ends
// by persisting the full state and broadcasting a sanitized copy.
type Room struct {
	Code  string
	State *models.GameState

	// Mu serializes all access to State.
	Mu sync.Mutex

	// BroadcastFn fans a message out to every live subscriber of this room.
	// Wired by the server layer to the session registry.
	BroadcastFn func(msg models.ServerMessage)

	rng         *rand.Rand
	store       store.Repository
	historian   *cache.Historian
	log         *logrus.Entry
	actionIndex int
}

// NewRoom creates a room around an existing state (fresh or hydrated from the
// store). seed feeds the room's shuffle RNG.
func NewRoom(state *models.GameState, repo store.Repository, hist *cache.Historian, seed uint64) *Room {
	return &Room{
		Code:      state.RoomID,
		State:     state,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		store:     repo,
		historian: hist,
		log:       logrus.WithField("room", state.RoomID),
	}
}

// HandleAction validates and applies one inbound action. Invalid actions
// degrade to a no-op or an ERROR reply to the sender; nothing here is fatal
// to the room.
func (r *Room) HandleAction(conn Conn, env models.Envelope) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	switch env.Type {
	case models.ActionJoin:
		r.handleJoin(conn, env)
	case models.ActionStart:
		r.handleStart(conn)
	case models.ActionPlayCard:
		r.handlePlayCard(conn, env)
	case models.ActionDrawCard:
		r.handleDrawCard(conn, env)
	case models.ActionPassTurn:
		r.handlePassTurn(conn, env)
	case models.ActionSayUno:
		r.handleSayUno(conn, env)
	case models.ActionCatchUno:
		r.handleCatchUno(conn, env)
	case models.ActionNextRound:
		r.handleNextRound(conn)
	case models.ActionChat:
		r.handleChat(env)
	default:
		r.log.WithField("action", env.Type).Warn("unknown action type")
		r.sendTo(conn, models.Error("Unknown action type"))
	}
}

// dealRound rebuilds the deck and deals a fresh round: 7 cards per player in
// join order, a non-wild starter on the discard pile, the remainder as the
// draw pile. Cumulative scores are preserved; per-round flags are not.
// Assumes lock is held by caller.
func (r *Room) dealRound() {
	st := r.State
	pile := deck.Shuffle(deck.Build(), r.rng)

	for _, p := range st.Players {
		p.Hand = append([]models.Card{}, pile[:HandSize]...)
		pile = pile[HandSize:]
		p.SaidUno = false
		p.HasDrawn = false
	}

	// A wild starter is buried at the bottom of the pile until a non-wild
	// surfaces. The fixed composition guarantees termination.
	starter := pile[0]
	pile = pile[1:]
	for starter.Color == models.ColorWild {
		pile = append(pile, starter)
		starter = pile[0]
		pile = pile[1:]
	}

	st.DiscardPile = []models.Card{starter}
	st.CurrentColor = starter.Color
	st.DrawPile = pile
	st.DeckCount = len(pile)
	st.TurnIndex = 0
	st.Direction = 1
	st.Status = models.StatusPlaying
	st.RoundWinnerID = uuid.Nil
}

// drawCards takes up to n cards off the draw pile. When the pile runs dry the
// discard pile minus its top card is reshuffled into a new draw pile; if even
// that yields nothing, fewer than n cards are returned.
// Assumes lock is held by caller.
func (r *Room) drawCards(n int) []models.Card {
	st := r.State
	drawn := make([]models.Card, 0, n)
	for len(drawn) < n {
		if len(st.DrawPile) == 0 && !r.reshuffleFromDiscard() {
			break
		}
		drawn = append(drawn, st.DrawPile[0])
		st.DrawPile = st.DrawPile[1:]
	}
	st.DeckCount = len(st.DrawPile)
	return drawn
}

// reshuffleFromDiscard rebuilds the draw pile from the discard pile, keeping
// only the active top card discarded. Returns false when there is nothing to
// reshuffle. Assumes lock is held by caller.
func (r *Room) reshuffleFromDiscard() bool {
	st := r.State
	if len(st.DiscardPile) < 2 {
		return false
	}
	top := st.DiscardPile[len(st.DiscardPile)-1]
	st.DrawPile = deck.Shuffle(st.DiscardPile[:len(st.DiscardPile)-1], r.rng)
	st.DiscardPile = []models.Card{top}
	r.log.WithField("cards", len(st.DrawPile)).Info("reshuffled discard pile into draw pile")
	return true
}

// advance moves the turn index by steps in the current direction.
// Assumes lock is held by caller.
func (r *Room) advance(steps int) {
	st := r.State
	for i := 0; i < steps; i++ {
		st.TurnIndex = rules.NextTurn(st.TurnIndex, len(st.Players), st.Direction)
	}
}

// endRound credits the winner with every other player's hand points and moves
// the room to round_over, or finished once the winner crosses the target
// score. Assumes lock is held by caller.
func (r *Room) endRound(winner *models.Player) {
	st := r.State
	points := 0
	for _, p := range st.Players {
		if p.ID != winner.ID {
			points += scoring.HandPoints(p.Hand)
		}
	}
	winner.Score += points

	if winner.Score >= TargetScore {
		st.Status = models.StatusFinished
		st.MatchWinnerID = winner.ID
		r.broadcast(models.Notification(winner.Name + " wins the match!"))
	} else {
		st.Status = models.StatusRoundOver
		st.RoundWinnerID = winner.ID
		r.broadcast(models.Notification(winner.Name + " wins the round!"))
	}
	r.log.WithFields(logrus.Fields{
		"winner": winner.ID,
		"points": points,
		"score":  winner.Score,
		"status": st.Status,
	}).Info("round ended")
}

// persistAndBroadcast writes the full room state, then pushes the sanitized
// snapshot to every subscriber. The save completes before the broadcast so
// clients never observe state a crash could roll back.
// Assumes lock is held by caller.
func (r *Room) persistAndBroadcast() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.SaveRoom(ctx, r.State); err != nil {
		r.log.WithError(err).Error("failed persisting room state")
	}
	r.broadcast(models.StateUpdate(Sanitize(r.State)))
}

// broadcast fans a message out via the registry callback.
// Assumes lock is held by caller.
func (r *Room) broadcast(msg models.ServerMessage) {
	if r.BroadcastFn == nil {
		r.log.Warn("BroadcastFn is nil, dropping broadcast")
		return
	}
	r.BroadcastFn(msg)
}

// sendTo replies to a single connection, swallowing transport errors.
func (r *Room) sendTo(conn Conn, msg models.ServerMessage) {
	if conn == nil {
		return
	}
	if err := conn.Send(msg); err != nil {
		r.log.WithError(err).Debug("failed sending to connection")
	}
}

// logAction queues an action record for the historian. Publishing is async
// and best-effort. Assumes lock is held by caller.
func (r *Room) logAction(actorID uuid.UUID, actionType string, payload map[string]any) {
	r.actionIndex++
	rec := cache.ActionRecord{
		RoomCode:    r.Code,
		ActionIndex: r.actionIndex,
		ActorID:     actorID,
		ActionType:  actionType,
		Payload:     payload,
		Timestamp:   time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.historian.Publish(ctx, rec); err != nil {
			r.log.WithError(err).Warn("failed publishing action record")
		}
	}()
}
