package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

func TestSanitizeStripsDrawPile(t *testing.T) {
	st := models.NewGameState("ROOM1")
	st.Players = []*models.Player{
		{ID: uuid.New(), Name: "Alice", Hand: []models.Card{newCard(models.ColorRed, "5")}},
		{ID: uuid.New(), Name: "Bob", Hand: []models.Card{newCard(models.ColorBlue, "7")}},
	}
	st.DrawPile = []models.Card{
		newCard(models.ColorGreen, "1"),
		newCard(models.ColorYellow, "2"),
		newCard(models.ColorRed, models.ValueSkip),
	}
	st.DiscardPile = []models.Card{newCard(models.ColorRed, "3")}
	st.CurrentColor = models.ColorRed
	st.Status = models.StatusPlaying
	st.TurnIndex = 1
	st.Direction = -1

	out := Sanitize(st)

	assert.Nil(t, out.DrawPile, "draw pile ordering must never leave the server")
	assert.Equal(t, 3, out.DeckCount, "clients still see how many cards remain")
	assert.Equal(t, st.DiscardPile, out.DiscardPile)
	assert.Equal(t, st.TurnIndex, out.TurnIndex)
	assert.Equal(t, st.Direction, out.Direction)
	assert.Equal(t, st.Status, out.Status)
	assert.Equal(t, st.CurrentColor, out.CurrentColor)
	require.Len(t, out.Players, 2)
	assert.Equal(t, st.Players[0].Hand, out.Players[0].Hand)

	// The copy is deep: mutating it must not reach the authoritative state.
	out.Players[0].Hand[0].Color = models.ColorBlue
	out.DiscardPile[0].Value = "9"
	assert.Equal(t, models.ColorRed, st.Players[0].Hand[0].Color)
	assert.Equal(t, models.Value("3"), st.DiscardPile[0].Value)
}
