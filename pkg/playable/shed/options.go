package shed

import "fmt"

// HandSize is the number of cards dealt to each tier and the hand cap while the deck lasts
const HandSize = 3

// seat limits of a game
const (
	MinSeats = 2
	MaxSeats = 4
)

// TwoRank selects where the 2 sits in the rank order
type TwoRank int

// TwoRank constants
const (
	// TwoHigh orders ranks 3,4,...,K,A,2
	TwoHigh TwoRank = iota
	// TwoLow orders ranks 2,3,...,K,A
	TwoLow
)

// IllegalPlayPolicy decides what happens when a card fails validation
type IllegalPlayPolicy int

// IllegalPlayPolicy constants
const (
	// IllegalPlayPickup converts the attempt into a forced pickup of the pile
	IllegalPlayPickup IllegalPlayPolicy = iota
	// IllegalPlayReject rejects the attempt with no change
	IllegalPlayReject
)

// Options are the rule switches for a game
type Options struct {
	// MinPlayers is the seat count a roster is padded to with bots
	MinPlayers  int
	MaxPlayers  int
	TwoRank     TwoRank
	IllegalPlay IllegalPlayPolicy
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MinPlayers:  4,
		MaxPlayers:  4,
		TwoRank:     TwoHigh,
		IllegalPlay: IllegalPlayPickup,
	}
}

// Validate checks the seat limits: MinSeats <= MinPlayers <= MaxPlayers <= MaxSeats
func (o Options) Validate() error {
	if o.MaxPlayers < MinSeats || o.MaxPlayers > MaxSeats {
		return fmt.Errorf("max players must be between %d and %d, got %d", MinSeats, MaxSeats, o.MaxPlayers)
	}

	if o.MinPlayers < MinSeats || o.MinPlayers > o.MaxPlayers {
		return fmt.Errorf("min players must be between %d and %d, got %d", MinSeats, o.MaxPlayers, o.MinPlayers)
	}

	return nil
}

// ParseTwoRank parses "high" or "low"
func ParseTwoRank(s string) (TwoRank, error) {
	switch s {
	case "", "high":
		return TwoHigh, nil
	case "low":
		return TwoLow, nil
	}

	return TwoHigh, fmt.Errorf("unknown two rank: %s", s)
}

// ParseIllegalPlayPolicy parses "pickup" or "reject"
func ParseIllegalPlayPolicy(s string) (IllegalPlayPolicy, error) {
	switch s {
	case "", "pickup":
		return IllegalPlayPickup, nil
	case "reject":
		return IllegalPlayReject, nil
	}

	return IllegalPlayPickup, fmt.Errorf("unknown illegal play policy: %s", s)
}
