// Package store persists full-fidelity room state, one record per room code.
// The persisted GameState always includes the draw pile; sanitizing is a
// broadcast concern, never a storage concern.
package store

import (
	"context"
	"errors"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// ErrNotFound is returned by LoadRoom for an unseen room code.
var ErrNotFound = errors.New("store: room not found")

// Repository is the persistence contract for room state.
type Repository interface {
	// SaveRoom upserts the full room state keyed by its room code.
	SaveRoom(ctx context.Context, state *models.GameState) error
	// LoadRoom returns the stored state for code, or ErrNotFound.
	LoadRoom(ctx context.Context, code string) (*models.GameState, error)
	Close(ctx context.Context) error
}
