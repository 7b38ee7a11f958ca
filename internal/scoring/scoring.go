// Package scoring computes round-end penalty points from a hand.
package scoring

import (
	"strconv"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

const (
	actionPoints = 20
	wildPoints   = 50
)

// HandPoints returns the penalty value of a hand: numerals at face value,
// skip/reverse/draw_two at 20, wilds at 50.
func HandPoints(hand []models.Card) int {
	total := 0
	for _, c := range hand {
		switch {
		case c.Value.IsWild():
			total += wildPoints
		case c.Value.IsAction():
			total += actionPoints
		default:
			if n, err := strconv.Atoi(string(c.Value)); err == nil {
				total += n
			}
		}
	}
	return total
}
