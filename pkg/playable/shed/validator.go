package shed

import (
	"shed-server/pkg/deck"
	"shed-server/pkg/model"
)

var rankOrderTwoHigh = []deck.Value{
	deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine,
	deck.Ten, deck.Jack, deck.Queen, deck.King, deck.Ace, deck.Two,
}

var rankOrderTwoLow = []deck.Value{
	deck.Two, deck.Three, deck.Four, deck.Five, deck.Six, deck.Seven, deck.Eight, deck.Nine,
	deck.Ten, deck.Jack, deck.Queen, deck.King, deck.Ace,
}

// RankOrder returns the comparable rank of a value, or -1 for an unknown value
func RankOrder(value deck.Value, twoRank TwoRank) int {
	order := rankOrderTwoHigh
	if twoRank == TwoLow {
		order = rankOrderTwoLow
	}

	for i, v := range order {
		if v == value {
			return i
		}
	}

	return -1
}

// IsWildcard returns true for values that can be played on anything
func IsWildcard(value deck.Value) bool {
	return value == deck.Two || value == deck.Ten
}

// Burns returns true for values that clear the pile when played
func Burns(value deck.Value) bool {
	return value == deck.Two || value == deck.Ten
}

// Validate decides whether card may be played on top; top is nil for an empty pile
func Validate(card deck.Card, top *deck.Card, opts Options) bool {
	if top == nil {
		return true
	}

	if IsWildcard(card.Value) {
		return true
	}

	return RankOrder(card.Value, opts.TwoRank) >= RankOrder(top.Value, opts.TwoRank)
}

// PlayableTier returns the tier a player must play from: hand, then visible, then hidden
// The second return is false once the player holds no cards.
func PlayableTier(state *model.State, playerID string) (model.Location, bool) {
	for _, tier := range []model.Location{model.LocationHand, model.LocationVisible, model.LocationHidden} {
		if len(state.CardsAt(tier, playerID)) > 0 {
			return tier, true
		}
	}

	return "", false
}

// PileTop returns the top of the pile, or nil if the pile is empty
func PileTop(state *model.State) *model.Card {
	pile := state.CardsAt(model.LocationPile, "")
	if len(pile) == 0 {
		return nil
	}

	return pile[len(pile)-1]
}

func pileTopCard(state *model.State) *deck.Card {
	top := PileTop(state)
	if top == nil {
		return nil
	}

	c := top.Card
	return &c
}
