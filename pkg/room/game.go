package room

import (
	"context"
	"errors"
	"fmt"

	"shed-server/pkg/model"
	"shed-server/pkg/notify"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/store"

	"github.com/sirupsen/logrus"
)

// ActionResult is what a player gets back after acting
type ActionResult struct {
	Result *shed.Result     `json:"result"`
	State  *shed.PlayerView `json:"state"`
}

// inviteCodeAttempts is how many generated invite codes are tried before giving up
const inviteCodeAttempts = 5

// CreateSession builds and stores a new game for the roster and returns its ID
// A second call with the same invite code returns a SessionExistsError with the first game's ID.
// A generated invite code that is already taken is replaced with a new one.
func (p *PitBoss) CreateSession(ctx context.Context, roster shed.Roster) (string, error) {
	if roster.InviteCode != "" {
		if err := p.checkInviteCode(ctx, roster.InviteCode); err != nil {
			return "", err
		}
	}

	var state *model.State
	for attempt := 1; ; attempt++ {
		var err error
		if state, err = shed.NewSession(roster, p.options.Rules, p.options.Generator); err != nil {
			return "", err
		}

		err = p.store.Create(ctx, state)
		if err == nil {
			break
		}

		if !errors.Is(err, store.ErrDuplicateInviteCode) {
			return "", err
		}

		if roster.InviteCode != "" {
			if err := p.checkInviteCode(ctx, roster.InviteCode); err != nil {
				return "", err
			}

			return "", err
		}

		if attempt == inviteCodeAttempts {
			return "", fmt.Errorf("could not generate a free invite code: %w", err)
		}

		p.logger.WithField("inviteCode", state.Game.InviteCode).Warn("generated invite code is taken, retrying")
	}

	p.logger.WithFields(logrus.Fields{
		"gameID":     state.Game.ID,
		"inviteCode": state.Game.InviteCode,
		"players":    len(state.Players),
	}).Info("game created")

	p.publish(notify.Event{GameID: state.Game.ID, Type: notify.EventStateChanged})
	if current := shed.CurrentPlayer(state); current != nil && current.IsBot {
		p.scheduleBot(state.Game.ID)
	}

	return state.Game.ID, nil
}

// checkInviteCode returns a SessionExistsError if a game exists for the code
func (p *PitBoss) checkInviteCode(ctx context.Context, inviteCode string) error {
	id, err := p.store.GameIDByInviteCode(ctx, inviteCode)
	if err == nil {
		return SessionExistsError{GameID: id}
	}

	if errors.Is(err, model.ErrGameNotFound) {
		return nil
	}

	return err
}

// GetState returns the game as the user's player sees it
func (p *PitBoss) GetState(ctx context.Context, gameID, userID string) (*shed.PlayerView, error) {
	state, err := p.store.View(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player := state.PlayerByUserID(userID)
	if player == nil {
		return nil, shed.ErrNotInGame
	}

	// a restarted server has no timer for a bot that was due to act
	if current := shed.CurrentPlayer(state); current != nil && current.IsBot && !state.Game.IsOver() {
		p.scheduleBot(gameID)
	}

	return shed.NewPlayerView(state, player.ID)
}

// PlayCard plays a card for the user
func (p *PitBoss) PlayCard(ctx context.Context, gameID, userID, cardID string) (*ActionResult, error) {
	return p.act(ctx, gameID, userID, func(table *shed.Table, playerID string) (*shed.Result, error) {
		return table.PlayCard(playerID, cardID)
	})
}

// DrawCard draws a card from the deck for the user
func (p *PitBoss) DrawCard(ctx context.Context, gameID, userID string) (*ActionResult, error) {
	return p.act(ctx, gameID, userID, func(table *shed.Table, playerID string) (*shed.Result, error) {
		return table.Draw(playerID)
	})
}

// PickUpPile picks up the pile for the user
func (p *PitBoss) PickUpPile(ctx context.Context, gameID, userID string) (*ActionResult, error) {
	return p.act(ctx, gameID, userID, func(table *shed.Table, playerID string) (*shed.Result, error) {
		return table.PickUp(playerID)
	})
}

type actionFunc func(table *shed.Table, playerID string) (*shed.Result, error)

// act applies the action under the game's dealer and saves it in the same step
func (p *PitBoss) act(ctx context.Context, gameID, userID string, action actionFunc) (*ActionResult, error) {
	var res *ActionResult
	err := p.do(ctx, gameID, func() error {
		return p.store.Update(ctx, gameID, func(state *model.State) error {
			player := state.PlayerByUserID(userID)
			if player == nil {
				return shed.ErrNotInGame
			}

			result, err := action(shed.NewTable(state, p.options.Rules, p.logger), player.ID)
			if err != nil {
				return err
			}

			view, err := shed.NewPlayerView(state, player.ID)
			if err != nil {
				return err
			}

			res = &ActionResult{Result: result, State: view}
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	p.afterAction(gameID, res.Result)
	return res, nil
}

// afterAction publishes the events of a saved action and schedules the next bot turn
func (p *PitBoss) afterAction(gameID string, res *shed.Result) {
	if res.Action == shed.ActionPlay && !res.ForcedPickup {
		p.publish(notify.Event{
			GameID:   gameID,
			Type:     notify.EventCardPlayed,
			PlayerID: res.PlayerID,
			Card:     res.Card,
		})
	}

	if res.GameOver {
		p.publish(notify.Event{
			GameID:   gameID,
			Type:     notify.EventGameOver,
			PlayerID: res.PlayerID,
			WinnerID: res.WinnerID,
		})
	}

	p.publish(notify.Event{GameID: gameID, Type: notify.EventStateChanged, PlayerID: res.PlayerID})

	if !res.GameOver && res.NextIsBot {
		p.scheduleBot(gameID)
	}
}
