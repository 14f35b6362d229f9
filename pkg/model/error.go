package model

import "errors"

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrGameNotFound happens when no game exists with the requested ID
var ErrGameNotFound = errors.New("game not found")

// ErrInvalidTransition happens when a game status would move backwards
var ErrInvalidTransition = errors.New("invalid game status transition")
