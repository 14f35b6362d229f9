package mux

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"shed-server/pkg/deck"
	"shed-server/pkg/model"
	"shed-server/pkg/playable"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/room"
	"shed-server/pkg/store"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arrange replaces the cards of a stored game; only u1 holds cards
func arrange(t *testing.T, st store.Store, gameID, hand, deckCards, pile string) {
	t.Helper()

	err := st.Update(cbg, gameID, func(state *model.State) error {
		u1 := state.PlayerByUserID("u1")
		require.NotNil(t, u1)

		state.Cards = nil
		add := func(list string, location model.Location, ownerID string) {
			for i, c := range deck.CardsFromString(list) {
				state.Cards = append(state.Cards, &model.Card{
					ID:       strings.ToLower(c.String()),
					GameID:   gameID,
					Card:     c,
					Location: location,
					OwnerID:  ownerID,
					Position: i,
				})
			}
		}

		add(hand, model.LocationHand, u1.ID)
		add(deckCards, model.LocationDeck, "")
		add(pile, model.LocationPile, "")
		return nil
	})
	require.NoError(t, err)
}

func TestMux_postGame(t *testing.T) {
	a := assert.New(t)
	ts, _, _ := newTestServer(t)
	u1 := token(t, "u1")

	assertPost(t, ts, "/game", nil, nil, 401)

	var created postGameResponse
	assertPost(t, ts, "/game", postGamePayload{InviteCode: "FRIDAY", Players: []string{"u2", "u1"}, Size: 3}, &created, 201, u1)
	a.NotEqual("", created.GameID)

	var view shed.PlayerView
	assertGet(t, ts, "/game/"+created.GameID, &view, 200, u1)
	a.Equal(created.GameID, view.GameID)
	a.Equal(0, view.Position)
	a.True(view.IsYourTurn)
	a.Equal(model.GameStatusOngoing, view.Status)
	a.Len(view.Hand, 3)
	a.Len(view.Opponents, 2)

	assertGet(t, ts, "/game/"+created.GameID, &view, 200, token(t, "u2"))
	a.Equal(1, view.Position)
	a.False(view.IsYourTurn)

	var errObj errorResponse
	assertPost(t, ts, "/game", postGamePayload{InviteCode: "FRIDAY", Players: []string{"u2"}}, &errObj, 409, u1)
	a.Equal(created.GameID, errObj.GameID)

	assertPost(t, ts, "/game", postGamePayload{Players: []string{"u2", "u3", "u4", "u5"}}, &errObj, 400, u1)
	a.Equal("expected between 2 and 4 players, got 5", errObj.Message)

	assertPost(t, ts, "/game", "{", &errObj, 400, u1)
}

func TestMux_postGameSolo(t *testing.T) {
	a := assert.New(t)
	ts, _, _ := newTestServer(t)
	u1 := token(t, "u1")

	var created postGameResponse
	assertPost(t, ts, "/game/solo", nil, &created, 201, u1)

	var view shed.PlayerView
	assertGet(t, ts, "/game/"+created.GameID, &view, 200, u1)
	if a.Len(view.Opponents, 1) {
		a.True(view.Opponents[0].IsBot)
		a.Equal(3, view.Opponents[0].HandCount)
		a.Equal(3, view.Opponents[0].HiddenCount)
		a.Len(view.Opponents[0].VisibleCards, 3)
	}
}

func TestMux_getGameID(t *testing.T) {
	ts, _, _ := newTestServer(t)
	u1 := token(t, "u1")

	var created postGameResponse
	assertPost(t, ts, "/game/solo", nil, &created, 201, u1)

	var errObj errorResponse
	assertGet(t, ts, "/game/"+created.GameID, &errObj, 403, token(t, "u9"))
	assert.Equal(t, shed.ErrNotInGame.Error(), errObj.Message)

	assertGet(t, ts, "/game/00000000-0000-0000-0000-000000000000", &errObj, 404, u1)
	assert.Equal(t, "game not found", errObj.Message)

	assertGet(t, ts, "/game/not-a-uuid", nil, 404, u1)
}

func TestMux_actions(t *testing.T) {
	a := assert.New(t)
	ts, _, st := newTestServer(t)
	u1 := token(t, "u1")
	u2 := token(t, "u2")

	var created postGameResponse
	assertPost(t, ts, "/game", postGamePayload{Players: []string{"u2"}}, &created, 201, u1)
	arrange(t, st, created.GameID, "4c,5c", "9h,6d", "3s")
	path := "/game/" + created.GameID

	var errObj errorResponse
	assertPost(t, ts, path+"/play", postGameIDPlayPayload{CardID: "4c"}, &errObj, 400, u2)
	a.Equal(shed.ErrNotYourTurn.Error(), errObj.Message)

	assertPost(t, ts, path+"/play", postGameIDPlayPayload{}, &errObj, 400, u1)
	a.Equal(errMissingCardID.Error(), errObj.Message)

	assertPost(t, ts, path+"/play", postGameIDPlayPayload{CardID: "9h"}, &errObj, 400, u1)
	a.Equal(shed.ErrInvalidCardSource.Error(), errObj.Message)

	assertPost(t, ts, path+"/play", postGameIDPlayPayload{CardID: "4c"}, &errObj, 403, token(t, "u9"))

	var res room.ActionResult
	assertPost(t, ts, path+"/play", postGameIDPlayPayload{CardID: "4c"}, &res, 200, u1)
	if a.NotNil(res.Result) {
		a.Equal(shed.ActionPlay, res.Result.Action)
		a.False(res.Result.ForcedPickup)
		a.Equal(2, res.Result.Drawn)
		a.Equal(0, res.Result.Burned)
	}
	if a.NotNil(res.State) {
		a.False(res.State.IsYourTurn)
		a.Len(res.State.Hand, 3)
		a.Len(res.State.Pile, 2)
		a.Equal(0, res.State.DeckCount)
	}

	assertPost(t, ts, path+"/draw", nil, &errObj, 400, u2)
	a.Equal(shed.ErrEmptyDeck.Error(), errObj.Message)

	res = room.ActionResult{}
	assertPost(t, ts, path+"/pickup", nil, &res, 200, u2)
	if a.NotNil(res.Result) {
		a.Equal(shed.ActionPickUp, res.Result.Action)
		a.Equal(2, res.Result.PickedUp)
	}
	if a.NotNil(res.State) {
		a.Len(res.State.Hand, 2)
		a.Len(res.State.Pile, 0)
	}

	// a bot holds the turn now
	assertPost(t, ts, path+"/pickup", nil, &errObj, 400, u2)
	a.Equal(shed.ErrNotYourTurn.Error(), errObj.Message)
}

func TestMux_getGameIDWS(t *testing.T) {
	a := assert.New(t)
	ts, _, _ := newTestServer(t)
	u1 := token(t, "u1")

	var created postGameResponse
	assertPost(t, ts, "/game/solo", nil, &created, 201, u1)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + created.GameID + "/ws?access_token=" + url.QueryEscape(u1)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/game/"+created.GameID+"/ws?access_token="+url.QueryEscape(token(t, "u9")), nil)
	a.Error(err)
	if a.NotNil(resp) {
		a.Equal(http.StatusForbidden, resp.StatusCode)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() playable.Response {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second*2)))

		var res playable.Response
		require.NoError(t, conn.ReadJSON(&res))
		return res
	}

	// the current view arrives on connect
	res := read()
	a.Equal("state", res.Key)

	require.NoError(t, conn.WriteJSON(playable.PayloadIn{Action: playable.ActionState, Context: "abc"}))
	for res = read(); res.Context != "abc"; res = read() {
	}
	a.Equal("state", res.Key)

	data, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var view shed.PlayerView
	require.NoError(t, json.Unmarshal(data, &view))
	a.Equal(created.GameID, view.GameID)
	a.True(view.IsYourTurn)

	require.NoError(t, conn.WriteJSON(playable.PayloadIn{Action: playable.ActionPickUp, Context: "def"}))
	for res = read(); res.Context != "def"; res = read() {
	}
	a.Equal("error", res.Key)
	a.Equal(shed.ErrEmptyPile.Error(), res.Value)
}
