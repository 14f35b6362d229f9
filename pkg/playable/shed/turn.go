package shed

import "shed-server/pkg/model"

// Next returns the player seated after current, wrapping around to the first seat
func Next(state *model.State, current *model.Player) *model.Player {
	players := state.PlayersInOrder()
	for i, player := range players {
		if player.ID == current.ID {
			return players[(i+1)%len(players)]
		}
	}

	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil
func CurrentPlayer(state *model.State) *model.Player {
	if state.Game.CurrentTurn == "" {
		return nil
	}

	return state.Player(state.Game.CurrentTurn)
}
