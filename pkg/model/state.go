package model

import (
	"sort"
)

// State is every row that belongs to a single game
type State struct {
	Game    *Game     `json:"game"`
	Players []*Player `json:"players"`
	Cards   []*Card   `json:"cards"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	game := *s.Game
	clone := &State{
		Game:    &game,
		Players: make([]*Player, len(s.Players)),
		Cards:   make([]*Card, len(s.Cards)),
	}

	for i, player := range s.Players {
		p := *player
		clone.Players[i] = &p
	}

	for i, card := range s.Cards {
		c := *card
		clone.Cards[i] = &c
	}

	return clone
}

// Player returns the player with the ID, or nil
func (s *State) Player(id string) *Player {
	for _, player := range s.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// PlayerByUserID returns the human player for the user, or nil
func (s *State) PlayerByUserID(userID string) *Player {
	if userID == "" {
		return nil
	}

	for _, player := range s.Players {
		if player.UserID == userID {
			return player
		}
	}

	return nil
}

// PlayersInOrder returns the players sorted by position
func (s *State) PlayersInOrder() []*Player {
	players := append([]*Player{}, s.Players...)
	sort.Slice(players, func(i, j int) bool {
		return players[i].Position < players[j].Position
	})

	return players
}

// Card returns the card with the ID, or nil
func (s *State) Card(id string) *Card {
	for _, card := range s.Cards {
		if card.ID == id {
			return card
		}
	}

	return nil
}

// CardsAt returns the cards of a (location, owner) bucket ordered by position
// ownerID must be empty for the deck and the pile
func (s *State) CardsAt(location Location, ownerID string) []*Card {
	cards := make([]*Card, 0)
	for _, card := range s.Cards {
		if card.Location == location && card.OwnerID == ownerID {
			cards = append(cards, card)
		}
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Position < cards[j].Position
	})

	return cards
}

// NextPosition returns one more than the highest position in a bucket, or 0 if it is empty
func (s *State) NextPosition(location Location, ownerID string) int {
	next := 0
	for _, card := range s.Cards {
		if card.Location == location && card.OwnerID == ownerID && card.Position >= next {
			next = card.Position + 1
		}
	}

	return next
}

// RemoveCards deletes cards from the state
func (s *State) RemoveCards(ids ...string) {
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	cards := make([]*Card, 0, len(s.Cards))
	for _, card := range s.Cards {
		if !remove[card.ID] {
			cards = append(cards, card)
		}
	}

	s.Cards = cards
}
