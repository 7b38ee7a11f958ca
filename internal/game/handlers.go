package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
	"github.com/Prem-Healthinformatics/pruno/internal/rules"
)

// handleJoin adds a new player, or treats a known identity as a reconnect:
// the current sanitized state is resent to that connection only, with no
// state mutation. Assumes lock is held by caller.
func (r *Room) handleJoin(conn Conn, env models.Envelope) {
	var p models.JoinPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed JOIN")
		return
	}

	if id, err := uuid.Parse(p.ID); err == nil {
		if existing := r.State.PlayerByID(id); existing != nil {
			if conn != nil {
				conn.BindPlayer(existing.ID)
			}
			r.sendTo(conn, models.StateUpdate(Sanitize(r.State)))
			r.logAction(existing.ID, "player_reconnect", nil)
			r.log.WithField("player", existing.ID).Info("player reconnected")
			return
		}
	}

	if r.State.Status != models.StatusWaiting {
		r.sendTo(conn, models.Error("Game already in progress"))
		return
	}
	if len(r.State.Players) >= MaxPlayers {
		r.sendTo(conn, models.Error("Room full"))
		return
	}

	id, err := uuid.Parse(p.ID)
	if err != nil {
		id = uuid.New()
	}
	name := p.Name
	if name == "" {
		name = "Guest"
	}
	player := &models.Player{ID: id, Name: name, Hand: []models.Card{}}
	r.State.Players = append(r.State.Players, player)
	if conn != nil {
		conn.BindPlayer(id)
	}

	r.logAction(id, "player_join", map[string]any{"name": name})
	r.log.WithField("player", id).Info("player joined")
	r.persistAndBroadcast()
}

// handleStart deals the first round. Only valid from waiting with at least
// two players. Assumes lock is held by caller.
func (r *Room) handleStart(conn Conn) {
	if r.State.Status != models.StatusWaiting {
		r.sendTo(conn, models.Error("Game already started"))
		return
	}
	if len(r.State.Players) < MinPlayers {
		r.sendTo(conn, models.Error("Need at least 2 players to start"))
		return
	}

	r.State.MatchWinnerID = uuid.Nil
	r.dealRound()
	r.logAction(uuid.Nil, "game_start", map[string]any{"players": len(r.State.Players)})
	r.log.WithField("players", len(r.State.Players)).Info("game started")
	r.persistAndBroadcast()
}

// handlePlayCard validates and applies a card play: turn, possession, and
// legality checks, then the card's effect, color resolution, UNO flag upkeep,
// and the round-end check. Effects fire before the round-end check, so a
// winning draw_two still penalizes the next player.
// Assumes lock is held by caller.
func (r *Room) handlePlayCard(conn Conn, env models.Envelope) {
	var p models.PlayCardPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed PLAY_CARD")
		return
	}
	st := r.State
	if st.Status != models.StatusPlaying {
		r.sendTo(conn, models.Error("No round in progress"))
		return
	}
	playerID, err := uuid.Parse(p.PlayerID)
	if err != nil {
		return
	}
	player := st.PlayerByID(playerID)
	if player == nil {
		return
	}
	if current := st.CurrentPlayer(); current == nil || current.ID != playerID {
		r.sendTo(conn, models.Error("It's not your turn"))
		return
	}

	// Play the server's copy of the named card, never the client's fields.
	cardIdx := -1
	for i, c := range player.Hand {
		if c.ID == p.Card.ID {
			cardIdx = i
			break
		}
	}
	if cardIdx == -1 {
		r.sendTo(conn, models.Error("You don't have that card"))
		return
	}
	card := player.Hand[cardIdx]

	top, ok := st.DiscardTop()
	if !ok || !rules.CanPlay(card, top, st.CurrentColor) {
		r.sendTo(conn, models.Error("You can't play that card"))
		return
	}

	player.Hand = append(player.Hand[:cardIdx], player.Hand[cardIdx+1:]...)
	st.DiscardPile = append(st.DiscardPile, card)
	for _, pl := range st.Players {
		pl.HasDrawn = false
	}

	steps := 1
	switch card.Value {
	case models.ValueSkip:
		steps = 2
	case models.ValueReverse:
		st.Direction *= -1
		// With two players a reverse hands the turn straight back to the
		// player who just moved; advancing by 2 makes it behave like a skip.
		if len(st.Players) == 2 {
			steps = 2
		}
	case models.ValueDrawTwo:
		steps = 2
		r.penalizeNext(2)
	case models.ValueWildDrawFour:
		steps = 2
		r.penalizeNext(4)
	}

	if card.Color != models.ColorWild {
		st.CurrentColor = card.Color
	} else if p.ChosenColor.IsSuit() {
		st.CurrentColor = p.ChosenColor
	} else {
		st.CurrentColor = models.ColorRed
	}

	// A standing UNO claim only survives at exactly one card.
	if len(player.Hand) > 1 {
		player.SaidUno = false
	}

	r.advance(steps)

	r.logAction(playerID, "play_card", map[string]any{
		"card":  string(card.Value),
		"color": string(st.CurrentColor),
	})

	if len(player.Hand) == 0 {
		r.endRound(player)
	}
	r.persistAndBroadcast()
}

// penalizeNext deals n cards to the player who would have gone next.
// Assumes lock is held by caller.
func (r *Room) penalizeNext(n int) {
	st := r.State
	nextIdx := rules.NextTurn(st.TurnIndex, len(st.Players), st.Direction)
	next := st.Players[nextIdx]
	next.Hand = append(next.Hand, r.drawCards(n)...)
	if len(next.Hand) > 1 {
		next.SaidUno = false
	}
}

// handleDrawCard draws exactly one card. A playable draw opens the
// play-or-pass sub-phase without advancing the turn; an unplayable draw
// advances immediately. Assumes lock is held by caller.
func (r *Room) handleDrawCard(conn Conn, env models.Envelope) {
	var p models.TurnPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed DRAW_CARD")
		return
	}
	st := r.State
	if st.Status != models.StatusPlaying {
		r.sendTo(conn, models.Error("No round in progress"))
		return
	}
	playerID, err := uuid.Parse(p.PlayerID)
	if err != nil {
		return
	}
	player := st.PlayerByID(playerID)
	if player == nil {
		return
	}
	if current := st.CurrentPlayer(); current == nil || current.ID != playerID {
		r.sendTo(conn, models.Error("It's not your turn"))
		return
	}
	if player.HasDrawn {
		r.sendTo(conn, models.Error("You already drew this turn, play or pass"))
		return
	}

	drawn := r.drawCards(1)
	if len(drawn) == 0 {
		r.sendTo(conn, models.Error("No cards left to draw"))
		return
	}
	card := drawn[0]
	player.Hand = append(player.Hand, card)
	player.SaidUno = false

	top, _ := st.DiscardTop()
	if rules.CanPlay(card, top, st.CurrentColor) {
		player.HasDrawn = true
	} else {
		r.advance(1)
	}

	r.logAction(playerID, "draw_card", map[string]any{"playable": player.HasDrawn})
	r.persistAndBroadcast()
}

// handlePassTurn declines to play a drawn playable card. Only valid during
// the play-or-pass sub-phase. Assumes lock is held by caller.
func (r *Room) handlePassTurn(conn Conn, env models.Envelope) {
	var p models.TurnPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed PASS_TURN")
		return
	}
	st := r.State
	if st.Status != models.StatusPlaying {
		r.sendTo(conn, models.Error("No round in progress"))
		return
	}
	playerID, err := uuid.Parse(p.PlayerID)
	if err != nil {
		return
	}
	player := st.PlayerByID(playerID)
	if player == nil {
		return
	}
	if current := st.CurrentPlayer(); current == nil || current.ID != playerID || !player.HasDrawn {
		r.sendTo(conn, models.Error("Nothing to pass"))
		return
	}

	player.HasDrawn = false
	r.advance(1)
	r.logAction(playerID, "pass_turn", nil)
	r.persistAndBroadcast()
}

// handleSayUno registers an UNO claim at one or two remaining cards (an early
// claim at two covers the play that gets the player to one).
// Assumes lock is held by caller.
func (r *Room) handleSayUno(conn Conn, env models.Envelope) {
	var p models.TurnPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed SAY_UNO")
		return
	}
	playerID, err := uuid.Parse(p.PlayerID)
	if err != nil {
		return
	}
	player := r.State.PlayerByID(playerID)
	if player == nil {
		return
	}
	if len(player.Hand) != 1 && len(player.Hand) != 2 {
		r.sendTo(conn, models.Error("You can only call UNO at one or two cards"))
		return
	}

	player.SaidUno = true
	r.broadcast(models.Notification(player.Name + " shouted UNO!"))
	r.logAction(playerID, "say_uno", nil)
	r.persistAndBroadcast()
}

// handleCatchUno penalizes a player caught at one card without a standing UNO
// claim: two penalty cards from the draw pile.
// Assumes lock is held by caller.
func (r *Room) handleCatchUno(conn Conn, env models.Envelope) {
	var p models.CatchUnoPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed CATCH_UNO")
		return
	}
	accuserID, err := uuid.Parse(p.AccuserID)
	if err != nil {
		return
	}
	targetID, err := uuid.Parse(p.TargetID)
	if err != nil {
		return
	}
	accuser := r.State.PlayerByID(accuserID)
	target := r.State.PlayerByID(targetID)
	if accuser == nil || target == nil {
		return
	}
	if len(target.Hand) != 1 || target.SaidUno {
		r.sendTo(conn, models.Error("Nothing to catch"))
		return
	}

	target.Hand = append(target.Hand, r.drawCards(2)...)
	target.SaidUno = false
	r.broadcast(models.Notification(accuser.Name + " caught " + target.Name + " without UNO! +2 cards"))
	r.logAction(accuserID, "catch_uno", map[string]any{"target": targetID.String()})
	r.persistAndBroadcast()
}

// handleNextRound deals the next round after a round_over, preserving
// cumulative scores. Assumes lock is held by caller.
func (r *Room) handleNextRound(conn Conn) {
	if r.State.Status != models.StatusRoundOver {
		r.sendTo(conn, models.Error("No round to advance"))
		return
	}
	r.dealRound()
	r.logAction(uuid.Nil, "next_round", nil)
	r.log.Info("next round dealt")
	r.persistAndBroadcast()
}

// handleChat relays an opaque blob with sender identity and a server
// timestamp attached. The server never inspects or decrypts contents, and
// nothing is persisted. Assumes lock is held by caller.
func (r *Room) handleChat(env models.Envelope) {
	var p models.ChatPayload
	if err := env.DecodePayload(&p); err != nil {
		r.log.WithError(err).Warn("dropping malformed CHAT")
		return
	}
	senderID, err := uuid.Parse(p.PlayerID)
	if err != nil {
		return
	}
	sender := r.State.PlayerByID(senderID)
	if sender == nil {
		return
	}

	r.broadcast(models.ServerMessage{
		Type: models.MsgChatMessage,
		Payload: models.ChatMessagePayload{
			SenderID:         sender.ID,
			SenderName:       sender.Name,
			EncryptedMessage: p.EncryptedMessage,
			Timestamp:        time.Now().UnixMilli(),
		},
	})
}
