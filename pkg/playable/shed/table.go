package shed

import (
	"shed-server/pkg/deck"
	"shed-server/pkg/model"

	"github.com/sirupsen/logrus"
)

// Action is what a player did on their turn
type Action string

// Action constants
const (
	ActionPlay   Action = "play"
	ActionDraw   Action = "draw"
	ActionPickUp Action = "pickup"
)

// Result describes the effect of one applied action
type Result struct {
	Action   Action     `json:"action"`
	PlayerID string     `json:"playerId"`
	Card     *deck.Card `json:"card,omitempty"`

	// Burned is the number of pile cards removed from the game
	Burned int `json:"burned"`

	// ForcedPickup is true when an illegal play was converted into a pickup
	ForcedPickup bool `json:"forcedPickup"`

	PickedUp     int    `json:"pickedUp"`
	Drawn        int    `json:"drawn"`
	GameOver     bool   `json:"gameOver"`
	WinnerID     string `json:"winnerId,omitempty"`
	NextPlayerID string `json:"nextPlayerId,omitempty"`
	NextIsBot    bool   `json:"nextIsBot"`
}

// Table applies actions to one game's state
// A Table is not safe for concurrent use; callers hold the game's lock.
type Table struct {
	state   *model.State
	options Options
	logger  logrus.FieldLogger
}

// NewTable returns a table engine for the state
func NewTable(state *model.State, opts Options, logger logrus.FieldLogger) *Table {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Table{
		state:   state,
		options: opts,
		logger:  logger.WithField("gameID", state.Game.ID),
	}
}

// State returns the underlying state
func (t *Table) State() *model.State {
	return t.state
}

// turnOf returns the acting player if it is their turn in an ongoing game
func (t *Table) turnOf(playerID string) (*model.Player, error) {
	switch t.state.Game.Status {
	case model.GameStatusFinished:
		return nil, ErrGameOver
	case model.GameStatusPending:
		return nil, ErrGameNotStarted
	}

	player := t.state.Player(playerID)
	if player == nil {
		return nil, ErrNotInGame
	}

	if t.state.Game.CurrentTurn != player.ID {
		return nil, ErrNotYourTurn
	}

	return player, nil
}

// advance hands the turn to the next player
func (t *Table) advance(player *model.Player, res *Result) {
	next := Next(t.state, player)
	t.state.Game.CurrentTurn = next.ID

	res.NextPlayerID = next.ID
	res.NextIsBot = next.IsBot
}

func (t *Table) moveToPile(card *model.Card) {
	card.Position = len(t.state.CardsAt(model.LocationPile, ""))
	card.Location = model.LocationPile
	card.OwnerID = ""
}

// burn deletes every pile card and returns how many were removed
func (t *Table) burn() int {
	pile := t.state.CardsAt(model.LocationPile, "")
	ids := make([]string, len(pile))
	for i, card := range pile {
		ids[i] = card.ID
	}

	t.state.RemoveCards(ids...)
	return len(ids)
}

// replenish draws from the deck until the hand holds HandSize cards or the deck runs out
func (t *Table) replenish(player *model.Player) int {
	drawn := 0
	for len(t.state.CardsAt(model.LocationHand, player.ID)) < HandSize {
		if !t.drawOne(player) {
			break
		}

		drawn++
	}

	return drawn
}

// drawOne moves the lowest-positioned deck card into the player's hand
func (t *Table) drawOne(player *model.Player) bool {
	d := t.state.CardsAt(model.LocationDeck, "")
	if len(d) == 0 {
		return false
	}

	card := d[0]
	card.Position = t.state.NextPosition(model.LocationHand, player.ID)
	card.Location = model.LocationHand
	card.OwnerID = player.ID
	return true
}

// pickUpPile appends the whole pile to the player's hand, keeping pile order
func (t *Table) pickUpPile(player *model.Player) int {
	pile := t.state.CardsAt(model.LocationPile, "")
	next := t.state.NextPosition(model.LocationHand, player.ID)
	for i, card := range pile {
		card.Location = model.LocationHand
		card.OwnerID = player.ID
		card.Position = next + i
	}

	return len(pile)
}
