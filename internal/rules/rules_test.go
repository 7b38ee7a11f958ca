package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

func card(color models.Color, value models.Value) models.Card {
	return models.Card{ID: uuid.New(), Color: color, Value: value}
}

func TestCanPlay(t *testing.T) {
	tests := []struct {
		name        string
		candidate   models.Card
		top         models.Card
		activeColor models.Color
		want        bool
	}{
		{
			name:        "matching color",
			candidate:   card(models.ColorRed, "5"),
			top:         card(models.ColorRed, "9"),
			activeColor: models.ColorRed,
			want:        true,
		},
		{
			name:        "matching value different color",
			candidate:   card(models.ColorBlue, "9"),
			top:         card(models.ColorRed, "9"),
			activeColor: models.ColorRed,
			want:        true,
		},
		{
			name:        "wild always playable",
			candidate:   card(models.ColorWild, models.ValueWild),
			top:         card(models.ColorRed, "9"),
			activeColor: models.ColorRed,
			want:        true,
		},
		{
			name:        "wild draw four always playable",
			candidate:   card(models.ColorWild, models.ValueWildDrawFour),
			top:         card(models.ColorGreen, models.ValueSkip),
			activeColor: models.ColorGreen,
			want:        true,
		},
		{
			name:        "no match",
			candidate:   card(models.ColorBlue, "7"),
			top:         card(models.ColorRed, "9"),
			activeColor: models.ColorRed,
			want:        false,
		},
		{
			name:        "matching action value",
			candidate:   card(models.ColorBlue, models.ValueSkip),
			top:         card(models.ColorRed, models.ValueSkip),
			activeColor: models.ColorRed,
			want:        true,
		},
		{
			// After a wild, legality is decided by the chosen color, not the
			// wild top's own color.
			name:        "wild top with resolved color",
			candidate:   card(models.ColorGreen, "2"),
			top:         card(models.ColorWild, models.ValueWild),
			activeColor: models.ColorGreen,
			want:        true,
		},
		{
			name:        "wild top with non-matching resolved color",
			candidate:   card(models.ColorBlue, "2"),
			top:         card(models.ColorWild, models.ValueWild),
			activeColor: models.ColorGreen,
			want:        false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlay(tt.candidate, tt.top, tt.activeColor))
		})
	}
}

func TestNextTurnWraps(t *testing.T) {
	assert.Equal(t, 1, NextTurn(0, 4, 1))
	assert.Equal(t, 0, NextTurn(3, 4, 1), "wraps forward")
	assert.Equal(t, 3, NextTurn(0, 4, -1), "wraps backward")
	assert.Equal(t, 2, NextTurn(3, 4, -1))
	assert.Equal(t, 1, NextTurn(0, 2, 1))
	assert.Equal(t, 1, NextTurn(0, 2, -1), "two players wrap the same either way")
}

// NextTurn negated is its own inverse: stepping forward then backward lands
// on the start for every index, count, and direction.
func TestNextTurnInverse(t *testing.T) {
	for n := 2; n <= 6; n++ {
		for i := 0; i < n; i++ {
			for _, d := range []int{1, -1} {
				got := NextTurn(NextTurn(i, n, d), n, -d)
				assert.Equal(t, i, got, "n=%d i=%d d=%d", n, i, d)
			}
		}
	}
}

func TestNextTurnNonNegative(t *testing.T) {
	for n := 2; n <= 6; n++ {
		for i := 0; i < n; i++ {
			for _, d := range []int{1, -1} {
				got := NextTurn(i, n, d)
				assert.GreaterOrEqual(t, got, 0)
				assert.Less(t, got, n)
			}
		}
	}
}
