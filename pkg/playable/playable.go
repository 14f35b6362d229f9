package playable

import (
	"errors"

	"shed-server/pkg/model"
)

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// ErrorResponse returns an error response
// Only a model.UserError is shown to the client verbatim.
func ErrorResponse(ctx string, err error) *Response {
	msg := "internal error"
	var userErr model.UserError
	if errors.As(err, &userErr) {
		msg = userErr.Error()
	} else if errors.Is(err, model.ErrGameNotFound) {
		msg = err.Error()
	}

	return &Response{
		Key:     "error",
		Value:   msg,
		Context: ctx,
	}
}

// Action is a move a websocket client can ask for
type Action string

// Action constants
const (
	ActionPlay   Action = "play"
	ActionDraw   Action = "draw"
	ActionPickUp Action = "pickup"
	ActionState  Action = "state"
)

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action Action `json:"action"`
	CardID string `json:"cardId"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}
