package store

import (
	"context"
	"errors"

	"shed-server/pkg/model"
)

// ErrDuplicateInviteCode happens when a game already exists for the invite code
var ErrDuplicateInviteCode = errors.New("a game already exists for the invite code")

// ErrConcurrentMutation happens when a mutation lost a race and could not be retried
var ErrConcurrentMutation = model.UserError("the game was changed by another request, try again")

// Store persists games as whole aggregates
type Store interface {
	// Create saves a new game with its players and cards as one unit
	// It returns ErrDuplicateInviteCode if the invite code is taken.
	Create(ctx context.Context, state *model.State) error

	// View returns a snapshot of the game
	View(ctx context.Context, gameID string) (*model.State, error)

	// Update runs fn with exclusive access to the game and saves its changes
	// If fn returns an error nothing is saved.
	Update(ctx context.Context, gameID string, fn func(state *model.State) error) error

	// GameIDByInviteCode returns the ID of the game created for the invite code
	GameIDByInviteCode(ctx context.Context, inviteCode string) (string, error)
}
