package model

import (
	"shed-server/pkg/deck"
)

// Location is where a card currently sits
type Location string

// Location constants
const (
	LocationDeck    Location = "deck"
	LocationHand    Location = "hand"
	LocationVisible Location = "visible"
	LocationHidden  Location = "hidden"
	LocationPile    Location = "pile"
)

// Valid returns true for one of the five locations
func (l Location) Valid() bool {
	switch l {
	case LocationDeck, LocationHand, LocationVisible, LocationHidden, LocationPile:
		return true
	}

	return false
}

// IsTier returns true if the location belongs to a player
func (l Location) IsTier() bool {
	return l == LocationHand || l == LocationVisible || l == LocationHidden
}

// Card is a record in the `cards` table
type Card struct {
	ID     string `json:"id"`
	GameID string `json:"gameId"`
	deck.Card
	Location Location `json:"location"`
	// OwnerID is empty while the card is in the deck or the pile
	OwnerID  string `json:"ownerId,omitempty"`
	Position int    `json:"position"`
}
