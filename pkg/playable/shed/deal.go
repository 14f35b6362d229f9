package shed

import (
	"shed-server/internal/rng"
	"shed-server/pkg/deck"
	"shed-server/pkg/model"

	"github.com/google/uuid"
)

// dealOrder is the order tiers are dealt to each player
var dealOrder = []model.Location{model.LocationHidden, model.LocationVisible, model.LocationHand}

// BuildDeck returns the 52 cards of a game in the deck, positioned 0..51 in a random order
func BuildDeck(gameID string, gen rng.Generator) []*model.Card {
	d := deck.New()
	d.Shuffle(gen)

	cards := make([]*model.Card, 0, d.CardsLeft())
	for position := 0; d.CanDraw(1); position++ {
		c, _ := d.Draw()
		cards = append(cards, &model.Card{
			ID:       uuid.New().String(),
			GameID:   gameID,
			Card:     c,
			Location: model.LocationDeck,
			Position: position,
		})
	}

	return cards
}

// Deal builds the deck for the game and deals three hidden, three visible and three hand cards
// to each player in seat order, drawing from the front of the deck.
// A game can only be dealt once.
func Deal(state *model.State, gen rng.Generator) error {
	if len(state.Cards) > 0 {
		return ErrDeckExists
	}

	cards := BuildDeck(state.Game.ID, gen)
	next := 0
	for _, player := range state.PlayersInOrder() {
		for _, tier := range dealOrder {
			for i := 0; i < HandSize; i++ {
				card := cards[next]
				next++

				card.Location = tier
				card.OwnerID = player.ID
				card.Position = i
			}
		}
	}

	state.Cards = cards
	return nil
}
