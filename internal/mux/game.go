package mux

import (
	"errors"
	"net/http"

	"shed-server/pkg/playable/shed"
)

type postGamePayload struct {
	InviteCode string   `json:"inviteCode"`
	Players    []string `json:"players"`
	Size       int      `json:"size"`
}

type postGameResponse struct {
	GameID string `json:"gameId"`
}

// postGame creates a session; the caller always takes the first seat
func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		caller := userID(r)
		users := []string{caller}
		for _, id := range pp.Players {
			if id != caller {
				users = append(users, id)
			}
		}

		m.createSession(w, r, shed.Roster{
			InviteCode: pp.InviteCode,
			UserIDs:    users,
			Size:       pp.Size,
		})
	}
}

// postGameSolo creates a game against a single bot
func (m *Mux) postGameSolo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.createSession(w, r, shed.Roster{
			UserIDs: []string{userID(r)},
			Size:    2,
		})
	}
}

func (m *Mux) createSession(w http.ResponseWriter, r *http.Request, roster shed.Roster) {
	id, err := m.pitBoss.CreateSession(r.Context(), roster)
	if err != nil {
		writeGameError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, postGameResponse{GameID: id})
}

func (m *Mux) getGameID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := m.pitBoss.GetState(r.Context(), gameID(r), userID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

type postGameIDPlayPayload struct {
	CardID string `json:"cardId"`
}

var errMissingCardID = errors.New("cardId is required")

func (m *Mux) postGameIDPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGameIDPlayPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.CardID == "" {
			writeJSONError(w, http.StatusBadRequest, errMissingCardID)
			return
		}

		res, err := m.pitBoss.PlayCard(r.Context(), gameID(r), userID(r), pp.CardID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGameIDDraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := m.pitBoss.DrawCard(r.Context(), gameID(r), userID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGameIDPickUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := m.pitBoss.PickUpPile(r.Context(), gameID(r), userID(r))
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
