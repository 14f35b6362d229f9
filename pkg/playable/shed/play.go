package shed

import (
	"shed-server/pkg/model"

	"github.com/sirupsen/logrus"
)

// CheckSource returns nil if the card belongs to the player and sits in their playable tier
func CheckSource(state *model.State, playerID string, card *model.Card) error {
	if card == nil || card.OwnerID != playerID {
		return ErrInvalidCardSource
	}

	tier, ok := PlayableTier(state, playerID)
	if !ok || card.Location != tier {
		return ErrInvalidCardSource
	}

	return nil
}

// PlayCard plays a card from the player's playable tier onto the pile.
// A card that fails validation is either rejected or turned into a forced pickup,
// depending on Options.IllegalPlay.
func (t *Table) PlayCard(playerID, cardID string) (*Result, error) {
	player, err := t.turnOf(playerID)
	if err != nil {
		return nil, err
	}

	card := t.state.Card(cardID)
	if err := CheckSource(t.state, player.ID, card); err != nil {
		return nil, err
	}

	log := t.logger.WithFields(logrus.Fields{
		"playerID": player.ID,
		"card":     card.Card.String(),
		"tier":     card.Location,
	})

	played := card.Card
	if !Validate(card.Card, pileTopCard(t.state), t.options) {
		if t.options.IllegalPlay == IllegalPlayReject {
			log.Debug("illegal play rejected")
			return nil, ErrIllegalPlay
		}

		// a hidden card is revealed by the attempt, so it joins the pile before the pickup
		if card.Location == model.LocationHidden {
			t.moveToPile(card)
		}

		res := &Result{
			Action:       ActionPlay,
			PlayerID:     player.ID,
			Card:         &played,
			ForcedPickup: true,
		}

		res.PickedUp = t.pickUpPile(player)
		t.advance(player, res)
		log.WithField("pickedUp", res.PickedUp).Debug("illegal play, forced pickup")
		return res, nil
	}

	res := &Result{
		Action:   ActionPlay,
		PlayerID: player.ID,
		Card:     &played,
	}

	t.moveToPile(card)
	if Burns(card.Value) {
		res.Burned = t.burn()
	}

	res.Drawn = t.replenish(player)
	log.WithFields(logrus.Fields{
		"burned": res.Burned,
		"drawn":  res.Drawn,
	}).Debug("card played")

	if t.finishIfWinner(player, res) {
		return res, nil
	}

	t.advance(player, res)
	return res, nil
}

// Draw moves one deck card into the player's hand and ends their turn
func (t *Table) Draw(playerID string) (*Result, error) {
	player, err := t.turnOf(playerID)
	if err != nil {
		return nil, err
	}

	if len(t.state.CardsAt(model.LocationHand, player.ID)) >= HandSize {
		return nil, ErrHandFull
	}

	if !t.drawOne(player) {
		return nil, ErrEmptyDeck
	}

	res := &Result{
		Action:   ActionDraw,
		PlayerID: player.ID,
		Drawn:    1,
	}

	t.advance(player, res)
	t.logger.WithField("playerID", player.ID).Debug("card drawn")
	return res, nil
}

// PickUp moves the whole pile into the player's hand and ends their turn
func (t *Table) PickUp(playerID string) (*Result, error) {
	player, err := t.turnOf(playerID)
	if err != nil {
		return nil, err
	}

	if PileTop(t.state) == nil {
		return nil, ErrEmptyPile
	}

	res := &Result{
		Action:   ActionPickUp,
		PlayerID: player.ID,
	}

	res.PickedUp = t.pickUpPile(player)
	t.advance(player, res)
	t.logger.WithFields(logrus.Fields{
		"playerID": player.ID,
		"pickedUp": res.PickedUp,
	}).Debug("pile picked up")
	return res, nil
}
