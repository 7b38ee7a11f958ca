// Package rules holds the pure legality and turn-order functions. No state,
// no side effects; the room state machine is the only caller that mutates.
package rules

import "github.com/Prem-Healthinformatics/pruno/internal/models"

// CanPlay reports whether candidate is legal on top of the discard given the
// active color. Legal iff the candidate is wild, matches the active color, or
// matches the top card's value. Matching against activeColor already covers
// the wild-top case, since the active color is always resolved to a suit by
// the time a turn completes.
func CanPlay(candidate, top models.Card, activeColor models.Color) bool {
	if candidate.Color == models.ColorWild {
		return true
	}
	if candidate.Color == activeColor {
		return true
	}
	return candidate.Value == top.Value
}

// NextTurn returns the next turn index, wrapping in both directions.
// direction is +1 or -1; the result is always in [0, playerCount).
func NextTurn(current, playerCount, direction int) int {
	return (current + direction + playerCount) % playerCount
}
