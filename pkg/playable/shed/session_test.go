package shed

import (
	"testing"

	"shed-server/internal/rng"
	"shed-server/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestNewSession(t *testing.T) {
	a := assert.New(t)

	state, err := NewSession(Roster{UserIDs: []string{"alice", "bob"}}, DefaultOptions(), rng.NewSeeded(1))
	a.NoError(err)

	a.Equal(model.GameStatusOngoing, state.Game.Status)
	a.Len(state.Game.InviteCode, inviteCodeLength)
	a.Equal(4, len(state.Players))
	a.Equal(52, len(state.Cards))

	players := state.PlayersInOrder()
	a.Equal(players[0].ID, state.Game.CurrentTurn)
	a.Equal("alice", players[0].UserID)
	a.Equal("Player 1", players[0].Name)
	a.False(players[0].IsBot)
	a.Equal("bob", players[1].UserID)
	for i, player := range players {
		a.Equal(i, player.Position)
		a.Equal(state.Game.ID, player.GameID)
	}

	for _, bot := range players[2:] {
		a.True(bot.IsBot)
		a.Equal("", bot.UserID)
		a.NotEqual("", bot.Name)
	}

	for _, player := range players {
		for _, tier := range []model.Location{model.LocationHidden, model.LocationVisible, model.LocationHand} {
			cards := state.CardsAt(tier, player.ID)
			if a.Len(cards, HandSize) {
				for i, card := range cards {
					a.Equal(i, card.Position)
				}
			}
		}
	}

	d := state.CardsAt(model.LocationDeck, "")
	a.Len(d, 52-4*9)
	for i := 1; i < len(d); i++ {
		a.True(d[i-1].Position < d[i].Position)
	}

	a.Empty(state.CardsAt(model.LocationPile, ""))
	a.Equal(ErrDeckExists, Deal(state, rng.NewSeeded(1)))
}

func TestNewSession_InviteCodeAndSize(t *testing.T) {
	a := assert.New(t)

	state, err := NewSession(Roster{InviteCode: "LOBBY1", UserIDs: []string{"alice"}, Size: 2}, DefaultOptions(), rng.NewSeeded(1))
	a.NoError(err)
	a.Equal("LOBBY1", state.Game.InviteCode)
	a.Equal(2, len(state.Players))
	a.Len(state.CardsAt(model.LocationDeck, ""), 52-2*9)
}

func TestNewSession_Deterministic(t *testing.T) {
	a := assert.New(t)

	s1, err := NewSession(Roster{UserIDs: []string{"alice"}}, DefaultOptions(), rng.NewSeeded(42))
	a.NoError(err)
	s2, err := NewSession(Roster{UserIDs: []string{"alice"}}, DefaultOptions(), rng.NewSeeded(42))
	a.NoError(err)

	d1 := s1.CardsAt(model.LocationDeck, "")
	d2 := s2.CardsAt(model.LocationDeck, "")
	for i := range d1 {
		a.Equal(d1[i].Card, d2[i].Card)
	}

	a.NotEqual(s1.Game.ID, s2.Game.ID)
}

func TestNewSession_Errors(t *testing.T) {
	a := assert.New(t)
	gen := rng.NewSeeded(1)

	_, err := NewSession(Roster{}, DefaultOptions(), gen)
	a.Equal(ErrEmptyRoster, err)

	_, err = NewSession(Roster{UserIDs: []string{""}}, DefaultOptions(), gen)
	a.Equal(ErrEmptyRoster, err)

	_, err = NewSession(Roster{UserIDs: []string{"a", "a"}}, DefaultOptions(), gen)
	a.Equal(ErrDuplicateUser, err)

	_, err = NewSession(Roster{UserIDs: []string{"a"}, Size: 5}, DefaultOptions(), gen)
	a.Equal(PlayerCountError{Min: 2, Max: 4, Got: 5}, err)
	a.EqualError(err, "expected between 2 and 4 players, got 5")

	_, err = NewSession(Roster{UserIDs: []string{"a", "b", "c", "d", "e"}}, DefaultOptions(), gen)
	a.Equal(PlayerCountError{Min: 2, Max: 4, Got: 5}, err)

	opts := DefaultOptions()
	opts.MinPlayers = 1
	_, err = NewSession(Roster{UserIDs: []string{"a"}}, opts, gen)
	a.Equal(PlayerCountError{Min: 2, Max: 4, Got: 1}, err)
}
