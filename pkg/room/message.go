package room

import (
	"context"

	"shed-server/pkg/notify"
	"shed-server/pkg/playable"
	"shed-server/pkg/playable/shed"
)

func eventResponse(event notify.Event) *playable.Response {
	return &playable.Response{
		Key:   "event",
		Value: string(event.Type),
		Data:  event,
	}
}

func stateResponse(view *shed.PlayerView, ctx string) *playable.Response {
	return &playable.Response{
		Key:     "state",
		Data:    view,
		Context: ctx,
	}
}

// sendState sends the client its view of the game
func (p *PitBoss) sendState(ctx context.Context, client *Client, msgCtx string) {
	view, err := p.GetState(ctx, client.gameID, client.userID)
	if err != nil {
		client.Send(playable.ErrorResponse(msgCtx, err))
		return
	}

	client.Send(stateResponse(view, msgCtx))
}

// ReceivedMessage is called when a client sends a message to the server
func (p *PitBoss) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	ctx := context.Background()

	var res *ActionResult
	var err error
	switch msg.Action {
	case playable.ActionState:
		p.sendState(ctx, c, msg.Context)
		return
	case playable.ActionPlay:
		res, err = p.PlayCard(ctx, c.gameID, c.userID, msg.CardID)
	case playable.ActionDraw:
		res, err = p.DrawCard(ctx, c.gameID, c.userID)
	case playable.ActionPickUp:
		res, err = p.PickUpPile(ctx, c.gameID, c.userID)
	default:
		p.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(playable.ErrorResponse(msg.Context, shed.ErrUnknownAction))
		return
	}

	if err != nil {
		p.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(playable.ErrorResponse(msg.Context, err))
		return
	}

	c.Send(&playable.Response{
		Key:     "result",
		Data:    res,
		Context: msg.Context,
	})
}
