package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

func sampleState(code string) *models.GameState {
	st := models.NewGameState(code)
	st.Players = []*models.Player{
		{ID: uuid.New(), Name: "Alice", Score: 45, Hand: []models.Card{
			{ID: uuid.New(), Color: models.ColorRed, Value: "5"},
		}},
	}
	st.DrawPile = []models.Card{{ID: uuid.New(), Color: models.ColorBlue, Value: models.ValueSkip}}
	st.DiscardPile = []models.Card{{ID: uuid.New(), Color: models.ColorGreen, Value: "0"}}
	st.Status = models.StatusPlaying
	st.CurrentColor = models.ColorGreen
	return st
}

func TestMemoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	st := sampleState("ABC123")

	require.NoError(t, repo.SaveRoom(ctx, st))

	loaded, err := repo.LoadRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, st.RoomID, loaded.RoomID)
	assert.Equal(t, st.Status, loaded.Status)
	assert.Equal(t, st.CurrentColor, loaded.CurrentColor)
	require.Len(t, loaded.Players, 1)
	assert.Equal(t, 45, loaded.Players[0].Score)
	assert.Equal(t, st.Players[0].Hand, loaded.Players[0].Hand)
	assert.Equal(t, st.DrawPile, loaded.DrawPile, "persistence keeps the full draw pile")
}

func TestMemoryLoadMissing(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.LoadRoom(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySaveOverwrites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	st := sampleState("ABC123")
	require.NoError(t, repo.SaveRoom(ctx, st))

	st.Status = models.StatusFinished
	st.Players[0].Score = 510
	require.NoError(t, repo.SaveRoom(ctx, st))

	loaded, err := repo.LoadRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, loaded.Status)
	assert.Equal(t, 510, loaded.Players[0].Score)
}

// Loads hand out independent copies: mutating one must not bleed into later
// loads or the stored record.
func TestMemoryLoadsAreIndependent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveRoom(ctx, sampleState("ABC123")))

	first, err := repo.LoadRoom(ctx, "ABC123")
	require.NoError(t, err)
	first.Players[0].Score = 999
	first.DrawPile = nil

	second, err := repo.LoadRoom(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 45, second.Players[0].Score)
	assert.Len(t, second.DrawPile, 1)
}
