package game

import "github.com/Prem-Healthinformatics/pruno/internal/models"

// Sanitize returns a deep copy of the state fit for broadcast: the draw pile
// is stripped and DeckCount substituted, so the undealt ordering is never
// revealed to clients. The persisted record is never sanitized — full
// fidelity is stored, only broadcasts are stripped.
func Sanitize(st *models.GameState) *models.GameState {
	out := &models.GameState{
		RoomID:        st.RoomID,
		Players:       make([]*models.Player, len(st.Players)),
		DrawPile:      nil,
		DiscardPile:   append([]models.Card{}, st.DiscardPile...),
		DeckCount:     len(st.DrawPile),
		TurnIndex:     st.TurnIndex,
		Direction:     st.Direction,
		Status:        st.Status,
		CurrentColor:  st.CurrentColor,
		RoundWinnerID: st.RoundWinnerID,
		MatchWinnerID: st.MatchWinnerID,
	}
	for i, p := range st.Players {
		cp := *p
		cp.Hand = append([]models.Card{}, p.Hand...)
		out.Players[i] = &cp
	}
	return out
}
