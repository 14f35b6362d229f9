package shed

import (
	"fmt"
	"strings"

	"shed-server/pkg/deck"
	"shed-server/pkg/model"
)

// tiers is the cards a test player starts with, as comma-separated card strings
type tiers struct {
	hand    string
	visible string
	hidden  string
	bot     bool
}

func addCards(state *model.State, list string, location model.Location, ownerID string) {
	if list == "" {
		return
	}

	for i, s := range strings.Split(list, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		state.Cards = append(state.Cards, &model.Card{
			ID:       s,
			GameID:   state.Game.ID,
			Card:     deck.CardFromString(s),
			Location: location,
			OwnerID:  ownerID,
			Position: i,
		})
	}
}

// setupState builds an ongoing game where player "p0" is to act
// Card IDs are the lower-case card strings, e.g., "5s".
func setupState(deckCards, pile string, players ...tiers) *model.State {
	state := &model.State{
		Game: &model.Game{ID: "g", Status: model.GameStatusOngoing, CurrentTurn: "p0", InviteCode: "ABC"},
	}

	for i, p := range players {
		id := fmt.Sprintf("p%d", i)
		player := &model.Player{ID: id, GameID: "g", Position: i, IsBot: p.bot}
		if !p.bot {
			player.UserID = fmt.Sprintf("u%d", i)
		}

		state.Players = append(state.Players, player)
		addCards(state, p.hand, model.LocationHand, id)
		addCards(state, p.visible, model.LocationVisible, id)
		addCards(state, p.hidden, model.LocationHidden, id)
	}

	addCards(state, deckCards, model.LocationDeck, "")
	addCards(state, pile, model.LocationPile, "")
	return state
}

func cardIDs(cards []*model.Card) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}

	return ids
}

func setupTable(opts Options, deckCards, pile string, players ...tiers) *Table {
	return NewTable(setupState(deckCards, pile, players...), opts, nil)
}
