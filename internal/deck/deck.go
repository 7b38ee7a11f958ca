// Package deck builds and shuffles the fixed 108-card deck.
//
// Composition per suit: one "0", two each of "1".."9", two each of
// skip/reverse/draw_two; plus four wild and four wild_draw_four colorless.
// 4×(1+18+6) + 8 = 108. Composition never varies; only ordering does.
package deck

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// Size is the total card count of a full deck.
const Size = 108

// Build constructs a full deck in canonical construction order, assigning
// every card a fresh identity.
func Build() []models.Card {
	cards := make([]models.Card, 0, Size)

	add := func(color models.Color, value models.Value) {
		cards = append(cards, models.Card{ID: uuid.New(), Color: color, Value: value})
	}

	for _, color := range models.Suits {
		add(color, "0")
		for i := 0; i < 2; i++ {
			for _, v := range models.Numerals[1:] {
				add(color, v)
			}
		}
		for i := 0; i < 2; i++ {
			for _, v := range models.Actions {
				add(color, v)
			}
		}
	}

	for i := 0; i < 4; i++ {
		for _, v := range models.Wilds {
			add(models.ColorWild, v)
		}
	}

	return cards
}

// Shuffle returns a uniformly random permutation of cards as a fresh slice,
// leaving the input untouched. Fisher-Yates; the comparator-sort shuffle is
// biased and deliberately not used here.
func Shuffle(cards []models.Card, rng *rand.Rand) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
