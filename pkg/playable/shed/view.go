package shed

import (
	"shed-server/pkg/deck"
	"shed-server/pkg/model"
)

// ViewCard is a face-up card as a client sees it
type ViewCard struct {
	ID string `json:"id"`
	deck.Card
}

// HiddenCard is a face-down card; only its identity is known
type HiddenCard struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// OpponentView is the public part of another player
type OpponentView struct {
	PlayerID     string     `json:"playerId"`
	Name         string     `json:"name"`
	Position     int        `json:"position"`
	IsBot        bool       `json:"isBot"`
	IsTurn       bool       `json:"isTurn"`
	HandCount    int        `json:"handCount"`
	HiddenCount  int        `json:"hiddenCount"`
	VisibleCards []ViewCard `json:"visibleCards"`
}

// PlayerView is the game as one player is allowed to see it
type PlayerView struct {
	GameID       string           `json:"gameId"`
	Status       model.GameStatus `json:"status"`
	PlayerID     string           `json:"playerId"`
	Position     int              `json:"position"`
	Hand         []ViewCard       `json:"hand"`
	VisibleCards []ViewCard       `json:"visibleCards"`
	HiddenCards  []HiddenCard     `json:"hiddenCards"`
	Pile         []ViewCard       `json:"pile"`
	DeckCount    int              `json:"deckCount"`
	IsYourTurn   bool             `json:"isYourTurn"`
	CurrentTurn  string           `json:"currentTurn,omitempty"`
	WinnerID     string           `json:"winnerId,omitempty"`
	Opponents    []OpponentView   `json:"opponents"`
}

func viewCards(cards []*model.Card) []ViewCard {
	view := make([]ViewCard, len(cards))
	for i, card := range cards {
		view[i] = ViewCard{ID: card.ID, Card: card.Card}
	}

	return view
}

// NewPlayerView projects the state for a player
// Opponents' hand and hidden cards are reduced to counts.
func NewPlayerView(state *model.State, playerID string) (*PlayerView, error) {
	player := state.Player(playerID)
	if player == nil {
		return nil, ErrNotInGame
	}

	hidden := state.CardsAt(model.LocationHidden, player.ID)
	hiddenCards := make([]HiddenCard, len(hidden))
	for i, card := range hidden {
		hiddenCards[i] = HiddenCard{ID: card.ID, Position: card.Position}
	}

	view := &PlayerView{
		GameID:       state.Game.ID,
		Status:       state.Game.Status,
		PlayerID:     player.ID,
		Position:     player.Position,
		Hand:         viewCards(state.CardsAt(model.LocationHand, player.ID)),
		VisibleCards: viewCards(state.CardsAt(model.LocationVisible, player.ID)),
		HiddenCards:  hiddenCards,
		Pile:         viewCards(state.CardsAt(model.LocationPile, "")),
		DeckCount:    len(state.CardsAt(model.LocationDeck, "")),
		IsYourTurn:   state.Game.Status == model.GameStatusOngoing && state.Game.CurrentTurn == player.ID,
		CurrentTurn:  state.Game.CurrentTurn,
		WinnerID:     state.Game.WinnerID,
		Opponents:    make([]OpponentView, 0, len(state.Players)-1),
	}

	for _, opponent := range state.PlayersInOrder() {
		if opponent.ID == player.ID {
			continue
		}

		view.Opponents = append(view.Opponents, OpponentView{
			PlayerID:     opponent.ID,
			Name:         opponent.Name,
			Position:     opponent.Position,
			IsBot:        opponent.IsBot,
			IsTurn:       state.Game.CurrentTurn == opponent.ID,
			HandCount:    len(state.CardsAt(model.LocationHand, opponent.ID)),
			HiddenCount:  len(state.CardsAt(model.LocationHidden, opponent.ID)),
			VisibleCards: viewCards(state.CardsAt(model.LocationVisible, opponent.ID)),
		})
	}

	return view, nil
}
