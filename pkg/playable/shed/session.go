package shed

import (
	"fmt"
	"time"

	"shed-server/internal/rng"
	"shed-server/internal/util"
	"shed-server/pkg/model"
	"shed-server/pkg/token"

	"github.com/google/uuid"
)

// inviteCodeLength is the length of generated invite codes
const inviteCodeLength = 6

// Roster is the ready list of humans a session is built from
type Roster struct {
	// InviteCode names the roster the game is built from; one is generated when empty
	InviteCode string `json:"inviteCode"`
	// UserIDs are seated in order starting at position 0
	UserIDs []string `json:"players"`
	// Size is the number of seats; zero means Options.MinPlayers
	Size int `json:"size"`
}

// NewSession builds a started game with its players and dealt cards.
// Humans take the first seats in roster order and bots fill the remaining seats.
// Nothing is persisted: the caller stores the returned state as one unit.
func NewSession(roster Roster, opts Options, gen rng.Generator) (*model.State, error) {
	if len(roster.UserIDs) == 0 {
		return nil, ErrEmptyRoster
	}

	size := roster.Size
	if size == 0 {
		size = opts.MinPlayers
	}

	if size < len(roster.UserIDs) {
		size = len(roster.UserIDs)
	}

	if size < MinSeats || size > opts.MaxPlayers {
		return nil, PlayerCountError{Min: MinSeats, Max: opts.MaxPlayers, Got: size}
	}

	seen := make(map[string]bool, len(roster.UserIDs))
	for _, userID := range roster.UserIDs {
		if userID == "" {
			return nil, ErrEmptyRoster
		}

		if seen[userID] {
			return nil, ErrDuplicateUser
		}

		seen[userID] = true
	}

	inviteCode := roster.InviteCode
	if inviteCode == "" {
		var err error
		if inviteCode, err = token.InviteCode(inviteCodeLength); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	state := &model.State{
		Game: &model.Game{
			ID:         uuid.New().String(),
			Status:     model.GameStatusPending,
			InviteCode: inviteCode,
			Created:    now,
			Updated:    now,
		},
		Players: make([]*model.Player, size),
	}

	for position := 0; position < size; position++ {
		player := &model.Player{
			ID:       uuid.New().String(),
			GameID:   state.Game.ID,
			Position: position,
		}

		if position < len(roster.UserIDs) {
			player.UserID = roster.UserIDs[position]
			player.Name = fmt.Sprintf("Player %d", position+1)
		} else {
			player.IsBot = true
			player.Name = util.RandomBotName(gen)
		}

		state.Players[position] = player
	}

	if err := Deal(state, gen); err != nil {
		return nil, err
	}

	if err := state.Game.Start(state.Players[0].ID); err != nil {
		return nil, err
	}

	return state, nil
}
