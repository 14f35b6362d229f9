package shed

import (
	"errors"

	"shed-server/pkg/model"
)

// BotMove is the decision made by the bot policy
type BotMove struct {
	CardID string
	PickUp bool
}

// DecideBotMove picks the first card of the bot's playable tier, in stored order,
// that can go on the pile. With no such card the bot picks up the pile.
func DecideBotMove(state *model.State, playerID string, opts Options) (BotMove, error) {
	tier, ok := PlayableTier(state, playerID)
	if !ok {
		return BotMove{}, errors.New("bot has no cards to play")
	}

	top := pileTopCard(state)
	for _, card := range state.CardsAt(tier, playerID) {
		if Validate(card.Card, top, opts) {
			return BotMove{CardID: card.ID}, nil
		}
	}

	return BotMove{PickUp: true}, nil
}

// PlayBot takes the current player's turn if they are a bot
func (t *Table) PlayBot() (*Result, error) {
	switch t.state.Game.Status {
	case model.GameStatusFinished:
		return nil, ErrGameOver
	case model.GameStatusPending:
		return nil, ErrGameNotStarted
	}

	bot := CurrentPlayer(t.state)
	if bot == nil || !bot.IsBot {
		return nil, ErrNotBotTurn
	}

	move, err := DecideBotMove(t.state, bot.ID, t.options)
	if err != nil {
		return nil, err
	}

	if move.PickUp {
		return t.PickUp(bot.ID)
	}

	return t.PlayCard(bot.ID, move.CardID)
}
