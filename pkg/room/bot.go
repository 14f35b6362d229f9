package room

import (
	"context"
	"errors"
	"time"

	"shed-server/pkg/model"
	"shed-server/pkg/playable/shed"
)

// scheduleBot queues a bot turn for the game after the bot delay
// At most one bot turn is pending per game.
func (p *PitBoss) scheduleBot(gameID string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.botPending[gameID] {
		return
	}

	p.botPending[gameID] = true
	time.AfterFunc(p.options.BotDelay, func() {
		p.runBot(gameID)
	})
}

// runBot takes one bot turn
// The turn is re-checked inside the dealer; a finished game or a human to act makes it a no-op.
// The pending mark is cleared once the turn is saved.
func (p *PitBoss) runBot(gameID string) {
	select {
	case <-p.close:
		return
	default:
	}

	log := p.logger.WithField("gameID", gameID)
	ctx := context.Background()

	var res *shed.Result
	err := p.do(ctx, gameID, func() error {
		defer p.clearBotPending(gameID)

		return p.store.Update(ctx, gameID, func(state *model.State) error {
			current := shed.CurrentPlayer(state)
			if state.Game.IsOver() || current == nil || !current.IsBot {
				return errBotStale
			}

			var err error
			res, err = shed.NewTable(state, p.options.Rules, p.logger).PlayBot()
			return err
		})
	})

	switch {
	case err == nil:
		p.afterAction(gameID, res)
	case errors.Is(err, errBotStale), errors.Is(err, model.ErrGameNotFound), errors.Is(err, errDealerClosed):
		log.WithError(err).Debug("skipping bot turn")
	default:
		log.WithError(err).Error("bot turn failed")
	}
}

func (p *PitBoss) clearBotPending(gameID string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	delete(p.botPending, gameID)
}
