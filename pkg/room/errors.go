package room

import (
	"errors"
	"fmt"
)

// SessionExistsError is returned when a session was already created for the invite code
type SessionExistsError struct {
	GameID string
}

func (s SessionExistsError) Error() string {
	return fmt.Sprintf("a game already exists for this invite code: %s", s.GameID)
}

// errDealerClosed happens when work is sent to a dealer that has ended its shift
var errDealerClosed = errors.New("dealer is closed")

// errBotStale happens when a scheduled bot turn finds a human (or nobody) to act
var errBotStale = errors.New("bot turn is no longer current")
