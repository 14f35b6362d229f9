package shed

import (
	"errors"
	"fmt"

	"shed-server/pkg/model"
)

// ErrNotYourTurn is returned when a player acts out of turn
var ErrNotYourTurn = model.UserError("it is not your turn")

// ErrInvalidCardSource happens when the card is not the player's or is not in their playable tier
var ErrInvalidCardSource = model.UserError("card is not one of your playable cards")

// ErrIllegalPlay happens when the card cannot be played on the pile and illegal plays are rejected
var ErrIllegalPlay = model.UserError("card cannot be played on the pile")

// ErrEmptyDeck is returned when drawing from an exhausted deck
var ErrEmptyDeck = model.UserError("the deck is empty")

// ErrEmptyPile is returned when picking up an empty pile
var ErrEmptyPile = model.UserError("the pile is empty")

// ErrHandFull is returned when drawing with a full hand
var ErrHandFull = model.UserError("your hand is full")

// ErrGameOver is returned for any action on a finished game
var ErrGameOver = model.UserError("game is over")

// ErrGameNotStarted is returned for any action on a pending game
var ErrGameNotStarted = model.UserError("game has not started")

// ErrNotInGame is returned when the caller has no seat in the game
var ErrNotInGame = model.UserError("you are not a player in this game")

// ErrEmptyRoster is returned when a session is requested without any humans
var ErrEmptyRoster = model.UserError("roster has no players")

// ErrDuplicateUser is returned when a user appears twice in a roster
var ErrDuplicateUser = model.UserError("roster contains the same user twice")

// ErrNotBotTurn is returned when a bot move is requested while a human is to act
var ErrNotBotTurn = errors.New("current player is not a bot")

// ErrDeckExists prevents a second deal for the same game
var ErrDeckExists = errors.New("deck already exists for this game")

// PlayerCountError is an error on the number of seats in a game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected between %d and %d players, got %d", p.Min, p.Max, p.Got)
}

// ErrUnknownAction is returned for an action the server does not know
var ErrUnknownAction = model.UserError("unknown action")
