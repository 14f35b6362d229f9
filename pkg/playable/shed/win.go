package shed

import "shed-server/pkg/model"

// IsWinner returns true once a player holds no cards in hand, visible or hidden
func IsWinner(state *model.State, playerID string) bool {
	for _, card := range state.Cards {
		if card.OwnerID == playerID && card.Location.IsTier() {
			return false
		}
	}

	return true
}

// finishIfWinner ends the game if the player has shed every card
func (t *Table) finishIfWinner(player *model.Player, res *Result) bool {
	if !IsWinner(t.state, player.ID) {
		return false
	}

	if err := t.state.Game.Finish(player.ID); err != nil {
		// turnOf already guaranteed the game is ongoing
		panic(err)
	}

	res.GameOver = true
	res.WinnerID = player.ID
	t.logger.WithField("playerID", player.ID).Info("game won")
	return true
}
